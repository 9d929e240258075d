package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"lilypay/internal/auth"
	"lilypay/internal/cart"
	"lilypay/internal/models"
	"lilypay/internal/order"
)

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		s.logger.Error("login_failed", "Login attempt rejected", requestID(r), err, map[string]interface{}{
			"username": req.Username,
		})
		writeError(w, statusFor(err), "Invalid username or password")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("token_issue_failed", "Failed to issue token", requestID(r), err, nil)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	s.logger.Info("login_succeeded", "User logged in", requestID(r), map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
	})
	writeJSON(w, http.StatusOK, "Login successful", loginResponse{Token: token, User: user})
}

// --- Catalog ---

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.logger.Error("list_categories_failed", "Failed to list categories", requestID(r), err, nil)
		writeError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, "Categories retrieved", categories)
}

func (s *Server) handleListSubcategories(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryInt(r, "category_id", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "category_id must be an integer")
		return
	}

	subcategories, err := s.catalog.Subcategories(r.Context(), categoryID)
	if err != nil {
		s.logger.Error("list_subcategories_failed", "Failed to list subcategories", requestID(r), err, nil)
		writeError(w, http.StatusInternalServerError, "Failed to load subcategories")
		return
	}
	writeJSON(w, http.StatusOK, "Subcategories retrieved", subcategories)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	subcategoryID, err := queryInt(r, "subcategory_id", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "subcategory_id must be an integer")
		return
	}

	items, err := s.catalog.FoodItems(r.Context(), subcategoryID)
	if err != nil {
		s.logger.Error("list_items_failed", "Failed to list food items", requestID(r), err, nil)
		writeError(w, http.StatusInternalServerError, "Failed to load food items")
		return
	}
	writeJSON(w, http.StatusOK, "Food items retrieved", items)
}

func (s *Server) handleMenuDetails(w http.ResponseWriter, r *http.Request) {
	menu, err := s.catalog.MenuDetails(r.Context())
	if err != nil {
		s.logger.Error("menu_details_failed", "Failed to load menu", requestID(r), err, nil)
		writeError(w, http.StatusInternalServerError, "Failed to load menu")
		return
	}
	writeJSON(w, http.StatusOK, "Menu retrieved", menu)
}

// --- Cart ---

func (s *Server) session(r *http.Request) (*cart.Session, *auth.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return nil, nil, false
	}
	return s.carts.Session(claims.UserID), claims, true
}

func (s *Server) handleViewCart(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, "Cart retrieved", session.View())
}

type addItemRequest struct {
	ItemID int `json:"item_id"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req addItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := s.catalog.SellableItem(r.Context(), req.ItemID)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	_ = session.Do(func(c *cart.Cart) error {
		c.AddOrIncrement(*item)
		return nil
	})
	writeJSON(w, http.StatusOK, "Item added", session.View())
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	itemID, err := strconv.Atoi(mux.Vars(r)["itemID"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var req setQuantityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = session.Do(func(c *cart.Cart) error {
		return c.SetQuantity(itemID, req.Quantity)
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, "Quantity updated", session.View())
}

func (s *Server) handleRemoveLine(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	itemID, err := strconv.Atoi(mux.Vars(r)["itemID"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	_ = session.Do(func(c *cart.Cart) error {
		c.RemoveLine(itemID)
		return nil
	})
	writeJSON(w, http.StatusOK, "Item removed", session.View())
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	_ = session.Do(func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	writeJSON(w, http.StatusOK, "Cart cleared", session.View())
}

type cartContextRequest struct {
	TableNumber *int    `json:"table_number,omitempty"`
	OrderType   *string `json:"order_type,omitempty"`
}

func (s *Server) handleSetContext(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req cartContextRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var orderType models.OrderType
	if req.OrderType != nil {
		parsed, err := models.ParseOrderType(*req.OrderType)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		orderType = parsed
	}

	err := session.Do(func(c *cart.Cart) error {
		if req.TableNumber != nil {
			if err := c.SetTableNumber(*req.TableNumber); err != nil {
				return err
			}
		}
		if req.OrderType != nil {
			c.SetOrderType(orderType)
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, "Cart context updated", session.View())
}

type tenderRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) handleSetTendered(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req tenderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := session.Do(func(c *cart.Cart) error {
		return c.SetTendered(req.Amount)
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, "Payment amount recorded", session.View())
}

// --- Orders ---

type commitOrderRequest struct {
	PaymentMethod string  `json:"payment_method"`
	Notes         *string `json:"notes,omitempty"`
}

func (s *Server) handleCommitOrder(w http.ResponseWriter, r *http.Request) {
	session, claims, ok := s.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req commitOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Snapshot, commit and clear under the session lock so a concurrent
	// cart mutation cannot slip between commit and clear.
	var confirmation *order.Confirmation
	err = session.Do(func(c *cart.Cart) error {
		conf, err := s.orders.Commit(r.Context(), claims.UserID, c.Snapshot(), method, req.Notes, requestID(r))
		if err != nil {
			return err
		}
		confirmation = conf
		c.Clear()
		return nil
	})
	if err != nil {
		s.logger.Error("order_commit_failed", "Order commit failed", requestID(r), err, map[string]interface{}{
			"cashier_id": claims.UserID,
		})
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, "Order committed", confirmation)
}

type orderDetails struct {
	Order *models.Order      `json:"order"`
	Lines []models.OrderLine `json:"lines"`
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	o, lines, err := s.orders.Lookup(r.Context(), number)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, "Order retrieved", orderDetails{Order: o, Lines: lines})
}

func (s *Server) handleRecentOrders(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	orders, err := s.reports.RecentOrders(r.Context(), limit, requestID(r))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, "Recent orders retrieved", orders)
}

func (s *Server) handleDailySales(w http.ResponseWriter, r *http.Request) {
	sales, err := s.reports.DailySales(r.Context(), requestID(r))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, "Daily sales retrieved", sales)
}

// --- Admin ---

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := decodeBody(r, &category); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.catalog.CreateCategory(r.Context(), &category, requestID(r)); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, "Category created", category)
}

func (s *Server) handleCreateFoodItem(w http.ResponseWriter, r *http.Request) {
	var item models.FoodItem
	if err := decodeBody(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.catalog.CreateFoodItem(r.Context(), &item, requestID(r)); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, "Food item created", item)
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

func (s *Server) handleSetAvailability(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(mux.Vars(r)["itemID"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var req availabilityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.catalog.SetAvailability(r.Context(), itemID, req.Available, requestID(r)); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, "Availability updated", map[string]interface{}{
		"item_id":   itemID,
		"available": req.Available,
	})
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.auth.CreateUser(r.Context(), req.Username, req.Password, role, req.FullName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("user_created", "User account created", requestID(r), map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
	})
	writeJSON(w, http.StatusCreated, "User created", user)
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

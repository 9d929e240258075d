package database

// User queries
const (
	GetUserByUsernameSQL = `
		SELECT id, username, password, role, full_name, is_active, created_at, updated_at
		FROM users WHERE username = $1 AND is_active = TRUE`

	InsertUserSQL = `
		INSERT INTO users (username, password, role, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	CountUsersSQL = `SELECT COUNT(*) FROM users`
)

// Catalog queries
const (
	GetCategoriesSQL = `
		SELECT id, name, description, is_active, display_order, created_at, updated_at
		FROM categories WHERE is_active = TRUE
		ORDER BY display_order, name`

	GetSubcategoriesSQL = `
		SELECT id, category_id, name, description, is_active, display_order, created_at, updated_at
		FROM subcategories WHERE is_active = TRUE
		ORDER BY category_id, display_order, name`

	GetSubcategoriesByCategorySQL = `
		SELECT id, category_id, name, description, is_active, display_order, created_at, updated_at
		FROM subcategories WHERE category_id = $1 AND is_active = TRUE
		ORDER BY display_order, name`

	GetFoodItemsSQL = `
		SELECT id, subcategory_id, name, description, price, cost, image_path,
			   is_available, stock_quantity, display_order, created_at, updated_at
		FROM food_items WHERE is_available = TRUE
		ORDER BY subcategory_id, display_order, name`

	GetFoodItemsBySubcategorySQL = `
		SELECT id, subcategory_id, name, description, price, cost, image_path,
			   is_available, stock_quantity, display_order, created_at, updated_at
		FROM food_items WHERE subcategory_id = $1 AND is_available = TRUE
		ORDER BY display_order, name`

	GetFoodItemByIDSQL = `
		SELECT id, subcategory_id, name, description, price, cost, image_path,
			   is_available, stock_quantity, display_order, created_at, updated_at
		FROM food_items WHERE id = $1`

	GetMenuDetailsSQL = `
		SELECT fi.id, fi.name, fi.description, fi.price, fi.cost,
			   fi.is_available, fi.stock_quantity,
			   sc.id AS subcategory_id, sc.name AS subcategory_name,
			   c.id AS category_id, c.name AS category_name
		FROM food_items fi
		JOIN subcategories sc ON fi.subcategory_id = sc.id
		JOIN categories c ON sc.category_id = c.id
		WHERE fi.is_available = TRUE AND sc.is_active = TRUE AND c.is_active = TRUE
		ORDER BY c.display_order, sc.display_order, fi.display_order`

	InsertCategorySQL = `
		INSERT INTO categories (name, description, display_order)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	InsertFoodItemSQL = `
		INSERT INTO food_items (subcategory_id, name, description, price, cost, stock_quantity, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	SetFoodItemAvailabilitySQL = `
		UPDATE food_items SET is_available = $1, updated_at = NOW()
		WHERE id = $2`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (order_number, cashier_id, total_amount, tax_amount, discount_amount,
			payment_method, payment_received, change_amount, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	InsertOrderLineSQL = `
		INSERT INTO order_lines (order_id, food_item_id, quantity, unit_price, subtotal, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`

	GetOrderByNumberSQL = `
		SELECT id, order_number, cashier_id, total_amount, tax_amount, discount_amount,
			   payment_method, payment_received, change_amount, status, notes, created_at
		FROM orders WHERE order_number = $1`

	GetOrderLinesSQL = `
		SELECT id, order_id, food_item_id, quantity, unit_price, subtotal, notes, created_at
		FROM order_lines WHERE order_id = $1
		ORDER BY id`
)

// Reporting queries
const (
	GetRecentOrdersSQL = `
		SELECT o.id, o.order_number, o.total_amount, o.payment_method, o.status,
			   o.created_at, u.full_name AS cashier_name, COUNT(ol.id) AS item_count
		FROM orders o
		JOIN users u ON o.cashier_id = u.id
		LEFT JOIN order_lines ol ON o.id = ol.order_id
		GROUP BY o.id, o.order_number, o.total_amount, o.payment_method, o.status,
				 o.created_at, u.full_name
		ORDER BY o.created_at DESC
		LIMIT $1`

	GetDailySalesSQL = `
		SELECT DATE(o.created_at) AS sale_date,
			   COUNT(*) AS order_count,
			   COALESCE(SUM(o.total_amount), 0) AS total_sales,
			   COALESCE(AVG(o.total_amount), 0) AS average_sale,
			   COALESCE(SUM(CASE WHEN o.payment_method = 'cash' THEN o.total_amount ELSE 0 END), 0) AS cash_sales,
			   COALESCE(SUM(CASE WHEN o.payment_method = 'card' THEN o.total_amount ELSE 0 END), 0) AS card_sales,
			   COALESCE(SUM(CASE WHEN o.payment_method = 'digital' THEN o.total_amount ELSE 0 END), 0) AS digital_sales
		FROM orders o
		WHERE o.status = 'completed'
		GROUP BY DATE(o.created_at)
		ORDER BY sale_date DESC`
)

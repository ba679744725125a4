package catalog

var (
	customerID  = Param{Name: "customer_id", Label: "Customer ID", Kind: ParamInt}
	orderID     = Param{Name: "order_id", Label: "Order ID", Kind: ParamInt}
	vendorID    = Param{Name: "vendor_id", Label: "Vendor ID", Kind: ParamInt}
	categoryID  = Param{Name: "category_id", Label: "Category ID", Kind: ParamInt}
	searchTerm  = Param{Name: "term", Label: "Search term", Kind: ParamText}
	maxDiscount = Param{Name: "max_discount", Label: "Maximum discount (0-1)", Kind: ParamFraction}
	minDiscount = Param{Name: "min_discount", Label: "Minimum discount (0-1)", Kind: ParamFraction}
)

func builtinEntries() []*Entry {
	return []*Entry{
		{
			Name:        "customer-orders",
			Title:       "Find Customer Orders",
			Group:       GroupBasic,
			Description: "Orders placed by one customer, with product and vendor names.",
			Params:      []Param{customerID},
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT o.order_id, p.name AS product_name, o.quantity,
       c.name AS customer_name, v.name AS vendor_name
FROM orders o
JOIN customer c ON o.customer_id = c.customer_id
JOIN product p ON o.product_id = p.product_id
JOIN vendor v ON o.created_by = v.vendor_id
WHERE o.customer_id = $1
ORDER BY o.order_id`, customerID.Name),
		},
		{
			Name:        "order-products",
			Title:       "List Products in Order",
			Group:       GroupBasic,
			Description: "The product line of one order.",
			Params:      []Param{orderID},
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT p.product_id, p.name, p.description, o.quantity,
       p.discount, cat.name AS category
FROM orders o
JOIN product p ON o.product_id = p.product_id
LEFT JOIN category cat ON p.category_id = cat.category_id
WHERE o.order_id = $1`, orderID.Name),
		},
		{
			Name:        "vendor-sales",
			Title:       "Vendor Sales Report",
			Group:       GroupBasic,
			Description: "Order count and quantity per product sold by one vendor.",
			Params:      []Param{vendorID},
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT v.name AS vendor_name, p.name AS product_name,
       COUNT(o.order_id) AS total_orders,
       SUM(o.quantity) AS total_quantity
FROM vendor v
JOIN orders o ON v.vendor_id = o.created_by
JOIN product p ON o.product_id = p.product_id
WHERE v.vendor_id = $1
GROUP BY v.vendor_id, v.name, p.product_id, p.name
ORDER BY total_orders DESC, p.product_id`, vendorID.Name),
		},
		{
			Name:        "customer-profile",
			Title:       "Customer Profile Info",
			Group:       GroupBasic,
			Description: "Contact details with primary address and payment method.",
			Params:      []Param{customerID},
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT c.name, c.email, c.phone, c.bio,
       a.street, a.city, a.zip_code,
       p.card_number, p.expiration_date
FROM customer c
LEFT JOIN profile pr ON c.customer_id = pr.customer_id
LEFT JOIN address a ON pr.primary_address_id = a.address_id
LEFT JOIN payment p ON pr.primary_payment_id = p.payment_id
WHERE c.customer_id = $1`, customerID.Name),
		},
		{
			Name:        "category-products",
			Title:       "Product Categories",
			Group:       GroupBasic,
			Description: "Products filed under one category.",
			Params:      []Param{categoryID},
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT p.name, p.description, p.quantity, p.discount,
       c.name AS category_name
FROM product p
JOIN category c ON p.category_id = c.category_id
WHERE c.category_id = $1
ORDER BY p.product_id`, categoryID.Name),
		},
		{
			Name:        "customer-payments",
			Title:       "Customer Payment Methods",
			Group:       GroupBasic,
			Description: "Payment methods on file for one customer.",
			Params:      []Param{customerID},
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT c.name AS customer_name,
       pay.card_number, pay.expiration_date,
       CASE WHEN pr.primary_payment_id = pay.payment_id
            THEN 'Primary' ELSE 'Secondary' END AS payment_status
FROM customer c
JOIN profile pr ON c.customer_id = pr.customer_id
JOIN payment pay ON pr.primary_payment_id = pay.payment_id
WHERE c.customer_id = $1`, customerID.Name),
		},
		{
			Name:        "product-search",
			Title:       "Product Search",
			Group:       GroupBasic,
			Description: "Case-insensitive substring match on product name or description.",
			Params:      []Param{searchTerm},
			Shape:       ShapeTable,
			Handler: searchQuery(`
SELECT p.product_id, p.name, p.description, p.quantity, p.discount,
       c.name AS category_name
FROM product p
LEFT JOIN category c ON p.category_id = c.category_id
WHERE p.name ILIKE $1 ESCAPE '\' OR p.description ILIKE $1 ESCAPE '\'
ORDER BY p.product_id`, searchTerm.Name),
		},
		{
			Name:        "vendor-info",
			Title:       "Vendor Information",
			Group:       GroupBasic,
			Description: "Vendor details with order and customer counts.",
			Params:      []Param{vendorID},
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT v.name, v.hotline, v.description,
       COUNT(DISTINCT o.order_id) AS total_orders,
       COUNT(DISTINCT o.customer_id) AS unique_customers
FROM vendor v
LEFT JOIN orders o ON v.vendor_id = o.created_by
WHERE v.vendor_id = $1
GROUP BY v.vendor_id, v.name, v.hotline, v.description`, vendorID.Name),
		},
		{
			Name:        "popular-products",
			Title:       "Popular Products",
			Group:       GroupBasic,
			Description: "Top 10 products by number of orders.",
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT p.product_id, p.name, p.description,
       COUNT(o.order_id) AS times_ordered,
       COALESCE(SUM(o.quantity), 0) AS total_quantity,
       c.name AS category_name
FROM product p
LEFT JOIN orders o ON p.product_id = o.product_id
LEFT JOIN category c ON p.category_id = c.category_id
GROUP BY p.product_id, p.name, p.description, c.name
HAVING COUNT(o.order_id) > 0
ORDER BY times_ordered DESC, p.product_id ASC
LIMIT 10`),
		},
		{
			Name:        "product-discounts",
			Title:       "Product Discounts",
			Group:       GroupBasic,
			Description: "Products discounted at most the given fraction, smallest discount first.",
			Params:      []Param{maxDiscount},
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT p.product_id, p.name, p.description, p.quantity,
       p.discount, c.name AS category_name
FROM product p
LEFT JOIN category c ON p.category_id = c.category_id
WHERE p.discount <= $1
ORDER BY p.discount ASC, p.product_id`, maxDiscount.Name),
		},
		insertProductEntry(),

		{
			Name:        "vendor-stats",
			Title:       "Vendor Performance",
			Group:       GroupAnalytics,
			Description: "Order statistics for one vendor.",
			Params:      []Param{vendorID},
			Shape:       ShapeMetrics,
			Handler: metricsQuery(`
SELECT COUNT(DISTINCT o.order_id) AS total_orders,
       COUNT(DISTINCT o.customer_id) AS unique_customers,
       COALESCE(SUM(o.quantity), 0) AS total_items_sold
FROM vendor v
LEFT JOIN orders o ON v.vendor_id = o.created_by
WHERE v.vendor_id = $1`, map[string]string{
				"total_orders":     "Total Orders",
				"unique_customers": "Unique Customers",
				"total_items_sold": "Total Items Sold",
			}, vendorID.Name),
		},
		{
			Name:        "vendor-top-products",
			Title:       "Vendor Product Performance",
			Group:       GroupAnalytics,
			Description: "The vendor's five most ordered products.",
			Params:      []Param{vendorID},
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT p.name AS product_name,
       COUNT(o.order_id) AS order_count,
       SUM(o.quantity) AS total_quantity
FROM vendor v
JOIN orders o ON v.vendor_id = o.created_by
JOIN product p ON o.product_id = p.product_id
WHERE v.vendor_id = $1
GROUP BY p.product_id, p.name
ORDER BY order_count DESC, p.product_id
LIMIT 5`, vendorID.Name),
		},
		{
			Name:        "product-analytics",
			Title:       "Product Performance",
			Group:       GroupAnalytics,
			Description: "Orders per product at or above a discount, optionally within one category.",
			Params:      []Param{minDiscount, {Name: "category_id", Label: "Category ID (optional)", Kind: ParamInt, Optional: true}},
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT p.product_id, p.name, p.description,
       COUNT(o.order_id) AS times_ordered,
       COALESCE(SUM(o.quantity), 0) AS total_quantity,
       p.discount,
       c.name AS category_name
FROM product p
LEFT JOIN orders o ON p.product_id = o.product_id
LEFT JOIN category c ON p.category_id = c.category_id
WHERE p.discount >= $1
  AND ($2::integer IS NULL OR p.category_id = $2::integer)
GROUP BY p.product_id, p.name, p.description, p.discount, c.name
ORDER BY times_ordered DESC, p.product_id`, minDiscount.Name, categoryID.Name),
		},
		{
			Name:        "customer-search",
			Title:       "Customer Insights",
			Group:       GroupAnalytics,
			Description: "Customers matched on name or email with order and vendor counts.",
			Params:      []Param{searchTerm},
			Shape:       ShapeTable,
			Handler: searchQuery(`
SELECT c.customer_id, c.name, c.email,
       COUNT(DISTINCT o.order_id) AS total_orders,
       COUNT(DISTINCT v.vendor_id) AS vendors_used
FROM customer c
LEFT JOIN orders o ON c.customer_id = o.customer_id
LEFT JOIN vendor v ON o.created_by = v.vendor_id
WHERE c.name ILIKE $1 ESCAPE '\' OR c.email ILIKE $1 ESCAPE '\'
GROUP BY c.customer_id, c.name, c.email
ORDER BY c.customer_id`, searchTerm.Name),
		},
		{
			Name:        "customer-stats",
			Title:       "Customer Statistics",
			Group:       GroupAnalytics,
			Description: "Customer count and average orders among ordering customers.",
			Shape:       ShapeMetrics,
			Handler: metricsQuery(`
SELECT COUNT(DISTINCT c.customer_id) AS total_customers,
       ROUND(COALESCE(AVG(order_counts.order_count), 0), 2) AS avg_orders_per_customer
FROM customer c
LEFT JOIN (
    SELECT customer_id, COUNT(*) AS order_count
    FROM orders
    GROUP BY customer_id
) order_counts ON c.customer_id = order_counts.customer_id`, map[string]string{
				"total_customers":         "Total Customers",
				"avg_orders_per_customer": "Average Orders per Customer",
			}),
		},
		{
			Name:        "payment-stats",
			Title:       "Payment Analytics",
			Group:       GroupAnalytics,
			Description: "Payment methods on file and customers using them.",
			Shape:       ShapeMetrics,
			Handler: metricsQuery(`
SELECT COUNT(DISTINCT p.payment_id) AS total_payment_methods,
       COUNT(DISTINCT pr.customer_id) AS customers_with_payment
FROM payment p
LEFT JOIN profile pr ON p.payment_id = pr.primary_payment_id`, map[string]string{
				"total_payment_methods":  "Total Payment Methods",
				"customers_with_payment": "Customers with Payment",
			}),
		},
		{
			Name:        "payment-details",
			Title:       "Customer Payment Details",
			Group:       GroupAnalytics,
			Description: "Primary payment method of every customer with a profile.",
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT c.name AS customer_name,
       p.card_number,
       p.expiration_date,
       CASE WHEN pr.primary_payment_id = p.payment_id
            THEN 'Primary' ELSE 'Secondary' END AS status
FROM customer c
JOIN profile pr ON c.customer_id = pr.customer_id
JOIN payment p ON pr.primary_payment_id = p.payment_id
ORDER BY c.name, c.customer_id`),
		},

		{
			Name:        "list-products",
			Title:       "Existing Products",
			Group:       GroupManagement,
			Description: "Every product with its category.",
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT p.product_id, p.name, p.description, p.quantity, p.discount,
       c.name AS category
FROM product p
LEFT JOIN category c ON p.category_id = c.category_id
ORDER BY p.product_id`),
		},
		{
			Name:        "list-categories",
			Title:       "Category List",
			Group:       GroupManagement,
			Description: "Category ids and names.",
			Shape:       ShapeTable,
			Handler:     tableQuery(`SELECT category_id, name FROM category ORDER BY category_id`),
		},
		{
			Name:        "list-vendors",
			Title:       "Vendor List",
			Group:       GroupManagement,
			Description: "Vendor ids, names and contact details.",
			Shape:       ShapeTable,
			Handler:     tableQuery(`SELECT vendor_id, name, hotline, description FROM vendor ORDER BY vendor_id`),
		},
		{
			Name:        "category-summary",
			Title:       "Existing Categories",
			Group:       GroupManagement,
			Description: "Product count per category.",
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT c.name, COUNT(p.product_id) AS product_count
FROM category c
LEFT JOIN product p ON c.category_id = p.category_id
GROUP BY c.category_id, c.name
ORDER BY c.category_id`),
		},
		{
			Name:        "vendor-summary",
			Title:       "Existing Vendors",
			Group:       GroupManagement,
			Description: "Order count per vendor.",
			Shape:       ShapeTable,
			Handler: tableQuery(`
SELECT v.name, v.hotline, v.description,
       COUNT(DISTINCT o.order_id) AS total_orders
FROM vendor v
LEFT JOIN orders o ON v.vendor_id = o.created_by
GROUP BY v.vendor_id, v.name, v.hotline, v.description
ORDER BY v.vendor_id`),
		},
		insertCategoryEntry(),
		insertVendorEntry(),
	}
}

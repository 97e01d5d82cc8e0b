package clientprotocol

type StatusRequest struct {
	PackageNumbers []string `json:"packageNumbers"`
}

type StatusResponse struct {
	Result     bool    `json:"result"`
	Msg        string  `json:"Msg"`
	AddedValue float64 `json:"added_value"`
}

// OrdersRequest carries the optional filter fields. Empty strings are ignored.
type OrdersRequest struct {
	PackageNo     string `json:"JDEsearch"`
	CustomerPhone string `json:"cust"`
	EmployeeLogin string `json:"emp"`
	Branch        string `json:"branch"`
	DateFrom      string `json:"fdate"`
	DateTo        string `json:"tdate"`
	ItemCode      string `json:"item"`
	Status        string `json:"jstatus"`
	Enrich        bool   `json:"enrich"`
}

type Order struct {
	PackageNo       string  `json:"package_no1"`
	ItemCode        string  `json:"alu1"`
	CreatedDate     string  `json:"created_date1"`
	ShipDate        string  `json:"ship_date1"`
	CustomerPhone   string  `json:"bt_primary_phone_no1"`
	CustomerName    string  `json:"bt_first_name1"`
	EmployeeLogin   string  `json:"employee1_login_name1"`
	Quantity        float64 `json:"order_qty1"`
	OriginalPrice   float64 `json:"Org_price1"`
	Price           float64 `json:"price1"`
	Discount        float64 `json:"disc_amt1"`
	InvoicePrice    float64 `json:"iprice1"`
	InvoiceDiscount float64 `json:"idisc_amt1"`
	Status          string  `json:"order_status1"`
	DueAmount       float64 `json:"due_amt1"`
	DepositPaid     float64 `json:"so_deposit_amt_paid1"`
	GiftCardAmount  float64 `json:"cgc1"`
	OrderDocNo      int64   `json:"doc_no1"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

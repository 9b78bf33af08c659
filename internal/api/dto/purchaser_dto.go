package dto

// UpdatePurchaserRequest is the purchaser profile patch.
type UpdatePurchaserRequest struct {
	Firstname       string `json:"firstname"`
	Middlename      string `json:"middlename"`
	Lastname        string `json:"lastname"`
	PersonalEmail   string `json:"personalEmail"`
	PersonalPhone   string `json:"personalPhone"`
	Company         string `json:"company"`
	CorporateEmail  string `json:"corporateEmail"`
	CorporatePhone  string `json:"corporatePhone"`
	FieldOfActivity string `json:"fieldOfActivity"`
	Position        string `json:"position"`
}

// ProductRequest carries software product fields for create and update.
type ProductRequest struct {
	ID          string `json:"id"`
	Vendor      string `json:"vendor"`
	ProductArea string `json:"productArea"`
	ProductType string `json:"productType"`
	ProductName string `json:"productName"`
	Description string `json:"description"`
}

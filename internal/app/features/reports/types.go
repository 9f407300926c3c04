package reports

import "github.com/scamwatch/scamwatch/internal/domain/models"

// submitRequest is the JSON body of POST /reports. CompanyID is optional
// and, when present, overrides the company resolved from the request
// headers.
type submitRequest struct {
	ReportedUsername string `json:"reportedUsername"`
	Description      string `json:"description"`
	ProofImageURL    string `json:"proofImageUrl"`
	CompanyID        string `json:"companyId"`
}

// reviewRequest is the JSON body of PATCH /reports/{id}. CompanyID is
// optional and follows the same precedence as Submit: body, then the
// company resolved from the request headers, then the query string. The
// reviewer's role is checked against whichever company wins.
type reviewRequest struct {
	Action    string `json:"action"` // "approve" | "deny"
	CompanyID string `json:"companyId"`
}

type reportResponse struct {
	Report models.Report `json:"report"`
}

type reportListResponse struct {
	Reports []models.Report `json:"reports"`
}

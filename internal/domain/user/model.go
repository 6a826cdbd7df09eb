package user

// Principal is the authenticated caller, as vouched for by the external
// account service. This service never issues or stores credentials.
type Principal struct {
	UserID string
	Email  string
}

package model

// Stack is a deployed application unit as reported by the stack source.
// JSON field names follow the Portainer API.
type Stack struct {
	Name       string `json:"Name"`
	ID         int    `json:"Id"`
	EndpointID int    `json:"EndpointId"`
}

// Card is a Stack enriched with display metadata for the HTML view.
type Card struct {
	Stack
	Icon        string
	Description string
	URL         string
}

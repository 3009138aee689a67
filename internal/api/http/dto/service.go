package dto

type ServiceInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

type ServicesResponse struct {
	Services []ServiceInfo `json:"services"`
	Count    int           `json:"count"`
}

// DispatchResponse describes where a request would be dispatched. Source is
// "path" or "header" depending on which signal selected the service.
type DispatchResponse struct {
	Service             string `json:"service"`
	Title               string `json:"title"`
	Source              string `json:"source"`
	Path                string `json:"path"`
	Query               string `json:"query,omitempty"`
	SubdomainFromPath   string `json:"subdomain_from_path,omitempty"`
	SubdomainFromHeader string `json:"subdomain_from_header,omitempty"`
}

package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrInvalidName     = errors.New("invalid service name")
	ErrDuplicateName   = errors.New("duplicate service name")
)

type Service struct {
	Name        string `mapstructure:"name" json:"name"`
	Title       string `mapstructure:"title" json:"title"`
	Description string `mapstructure:"description" json:"description,omitempty"`
}

// Catalog is the read-only set of services reachable through a subdomain.
// It is built once at startup and never mutated, so it is safe for
// concurrent use without locking.
type Catalog struct {
	byName map[string]Service
	sorted []Service
}

func New(services []Service) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]Service, len(services)),
		sorted: make([]Service, 0, len(services)),
	}

	for _, svc := range services {
		svc.Name = strings.ToLower(strings.TrimSpace(svc.Name))
		if !validName(svc.Name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, svc.Name)
		}
		if _, exists := c.byName[svc.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, svc.Name)
		}
		if svc.Title == "" {
			svc.Title = svc.Name
		}
		c.byName[svc.Name] = svc
		c.sorted = append(c.sorted, svc)
	}

	sort.Slice(c.sorted, func(i, j int) bool {
		return c.sorted[i].Name < c.sorted[j].Name
	})

	slog.Info("Service catalog loaded", "services", len(c.sorted))
	return c, nil
}

// Lookup is case-insensitive, matching how hostnames compare.
func (c *Catalog) Lookup(name string) (Service, error) {
	svc, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return Service{}, ErrServiceNotFound
	}
	return svc, nil
}

// List returns the services ordered by name. The slice is a copy.
func (c *Catalog) List() []Service {
	out := make([]Service, len(c.sorted))
	copy(out, c.sorted)
	return out
}

func (c *Catalog) Len() int {
	return len(c.sorted)
}

// validName accepts a DNS label or a dotted sequence of them.
func validName(name string) bool {
	if name == "" || len(name) > 253 {
		return false
	}
	for _, label := range strings.Split(name, ".") {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
				return false
			}
		}
	}
	return true
}

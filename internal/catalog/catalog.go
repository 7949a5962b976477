// Package catalog maps stack names to the icon, description and launch URL
// shown on the portal. The tables are fixed at build time; unknown names get
// the defaults below.
package catalog

import (
	"fmt"
	"strings"

	"github.com/minicloud/portal/internal/model"
)

// Fallbacks for stacks missing from the tables.
const (
	DefaultIcon        = "📦"
	DefaultDescription = "Application"
	DefaultPort        = 80
	DefaultHost        = "localhost"

	// UnknownName replaces an empty stack name on cards.
	UnknownName = "Unknown"
)

var icons = map[string]string{
	"filebrowser": "📁",
	"gitea":       "🐙",
	"jupyter":     "📓",
	"mealie":      "🥗",
	"nextcloud":   "☁️",
	"redis":       "🧰",
	"sagemath":    "📐",
}

var descriptions = map[string]string{
	"filebrowser": "Web-based file manager",
	"gitea":       "Self-hosted Git service",
	"jupyter":     "Interactive data science notebooks",
	"mealie":      "Personal recipe manager",
	"nextcloud":   "Private cloud storage & collaboration",
	"redis":       "High-performance key-value store",
	"sagemath":    "Open-source mathematics system",
}

// Placeholder ports on the portal host. redis has no web UI.
var ports = map[string]int{
	"filebrowser": 8080,
	"gitea":       3000,
	"jupyter":     8888,
	"mealie":      9925,
	"nextcloud":   8081,
	"redis":       6379,
	"sagemath":    8888,
}

// Lookup returns the display metadata for name, case-insensitively.
func Lookup(name string) (icon, description string, port int) {
	key := strings.ToLower(name)

	icon, ok := icons[key]
	if !ok {
		icon = DefaultIcon
	}
	description, ok = descriptions[key]
	if !ok {
		description = DefaultDescription
	}
	port, ok = ports[key]
	if !ok {
		port = DefaultPort
	}
	return icon, description, port
}

// Display is the derived, per-request presentation of a stack.
type Display struct {
	Icon        string
	Description string
	URL         string
}

// Resolver builds launch URLs against a single host.
type Resolver struct {
	host string
}

// NewResolver creates a Resolver. An empty host means DefaultHost.
func NewResolver(host string) *Resolver {
	if host == "" {
		host = DefaultHost
	}
	return &Resolver{host: host}
}

// Resolve returns icon, description and launch URL for name.
func (r *Resolver) Resolve(name string) Display {
	icon, description, port := Lookup(name)
	return Display{
		Icon:        icon,
		Description: description,
		URL:         fmt.Sprintf("http://%s:%d", r.host, port),
	}
}

// Cards enriches stacks in order.
func (r *Resolver) Cards(stacks []model.Stack) []model.Card {
	cards := make([]model.Card, 0, len(stacks))
	for _, s := range stacks {
		if s.Name == "" {
			s.Name = UnknownName
		}
		d := r.Resolve(s.Name)
		cards = append(cards, model.Card{
			Stack:       s,
			Icon:        d.Icon,
			Description: d.Description,
			URL:         d.URL,
		})
	}
	return cards
}

package ports

import "github.com/petricontrols/bootstrap/domain/entities"

// ConfigParser decodes raw configuration bytes.
type ConfigParser interface {
	Parse(data []byte) (*entities.Config, error)
}

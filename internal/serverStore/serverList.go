package serverstore

import (
	"github.com/hopcli/hop/internal/apperrors"
	"github.com/hopcli/hop/internal/models"
)

type ServerList struct {
	Servers []models.Server `json:"servers"`
}

func NewServerList() *ServerList {
	return &ServerList{Servers: []models.Server{}}
}

func (l *ServerList) Add(server models.Server) error {
	if _, ok := l.Find(server.Name); ok {
		return apperrors.Newf(apperrors.KindConfig, "add server", "server with name '%s' already exists", server.Name)
	}

	l.Servers = append(l.Servers, server)
	return nil
}

func (l *ServerList) Remove(identifier string) (models.Server, error) {
	index := l.indexOf(identifier)
	if index < 0 {
		return models.Server{}, notFound(identifier)
	}

	removed := l.Servers[index]
	l.Servers = append(l.Servers[:index], l.Servers[index+1:]...)
	return removed, nil
}

func (l *ServerList) Find(identifier string) (models.Server, bool) {
	index := l.indexOf(identifier)
	if index < 0 {
		return models.Server{}, false
	}
	return l.Servers[index], true
}

// Get is Find for callers that want the not found error ready to return.
func (l *ServerList) Get(identifier string) (models.Server, error) {
	server, ok := l.Find(identifier)
	if !ok {
		return models.Server{}, notFound(identifier)
	}
	return server, nil
}

// Replace swaps the server called identifier for updated. Renaming onto a name
// that is already taken is refused.
func (l *ServerList) Replace(identifier string, updated models.Server) error {
	index := l.indexOf(identifier)
	if index < 0 {
		return notFound(identifier)
	}

	if updated.Name != identifier {
		if _, ok := l.Find(updated.Name); ok {
			return apperrors.Newf(apperrors.KindConfig, "edit server", "server with name '%s' already exists", updated.Name)
		}
	}

	l.Servers[index] = updated
	return nil
}

func (l *ServerList) List() []models.Server {
	return l.Servers
}

func (l *ServerList) IsEmpty() bool {
	return len(l.Servers) == 0
}

func (l *ServerList) indexOf(identifier string) int {
	for i, server := range l.Servers {
		if server.Matches(identifier) {
			return i
		}
	}
	return -1
}

func notFound(identifier string) error {
	return apperrors.Newf(apperrors.KindNotFound, "find server", "server '%s' not found", identifier)
}

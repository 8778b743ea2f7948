package models

import "fmt"

type Server struct {
	Name string `json:"name" yaml:"name"`
	User string `json:"user" yaml:"user"`
	Ip   string `json:"ip" yaml:"ip"`
}

func NewServer(name, user, ip string) Server {
	return Server{Name: name, User: user, Ip: ip}
}

func (s Server) Matches(identifier string) bool {
	return s.Name == identifier
}

func (s Server) Target() string {
	return fmt.Sprintf("%s@%s", s.User, s.Ip)
}

func (s Server) SshCommand() string {
	return "ssh " + s.Target()
}

func (s Server) String() string {
	return fmt.Sprintf("%s -> %s", s.Name, s.Target())
}

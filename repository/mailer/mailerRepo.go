package mailerrepo

import "context"

type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

type Repo interface {
	Send(ctx context.Context, msg Message) error
}

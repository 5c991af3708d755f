package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Jacobbrewer1/discordgo"
)

// isNotFound reports whether the error is a REST error for a resource that does not exist.
func isNotFound(err error) bool {
	er := new(discordgo.RESTError)
	if !errors.As(err, &er) {
		return false
	}

	if er.Message != nil {
		switch er.Message.Code {
		case discordgo.ErrCodeUnknownChannel,
			discordgo.ErrCodeUnknownMessage,
			discordgo.ErrCodeUnknownGuildScheduledEvent:
			return true
		}
	}
	return er.Response != nil && er.Response.StatusCode == http.StatusNotFound
}

// platformError wraps the error with target when the resource does not exist.
func platformError(err error, target error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)
	if isNotFound(err) {
		return fmt.Errorf("%s: %w: %w", msg, target, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

package util

import (
	"net/http"
	"strings"
)

// Envelope is the uniform success payload returned by every endpoint.
type Envelope struct {
	Status   int    `json:"status"`
	Message  string `json:"message"`
	Response any    `json:"response"`
}

// OK wraps a payload in a 200 envelope.
func OK(response any) Envelope {
	return envelope(http.StatusOK, response)
}

// Created wraps a payload in a 201 envelope.
func Created(response any) Envelope {
	return envelope(http.StatusCreated, response)
}

func envelope(status int, response any) Envelope {
	return Envelope{
		Status:   status,
		Message:  strings.ToUpper(http.StatusText(status)),
		Response: response,
	}
}

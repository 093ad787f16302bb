// Package response defines the uniform envelope every endpoint returns:
//
//	{ "success": bool, "message": string, "responseObject": T|null, "statusCode": int }
//
// Services build envelopes; handlers serialize them with the embedded status
// code. Payload types should be pointers or slices so a failed envelope
// marshals responseObject as null.
package response

import "net/http"

// Envelope is the canonical service result.
type Envelope[T any] struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResponseObject T      `json:"responseObject"`
	StatusCode     int    `json:"statusCode"`
}

// OK wraps a successful payload with status 200.
func OK[T any](message string, object T) Envelope[T] {
	return Success(message, object, http.StatusOK)
}

// Created wraps a successful payload with status 201.
func Created[T any](message string, object T) Envelope[T] {
	return Success(message, object, http.StatusCreated)
}

// Success wraps a payload with an explicit status code.
func Success[T any](message string, object T, statusCode int) Envelope[T] {
	return Envelope[T]{
		Success:        true,
		Message:        message,
		ResponseObject: object,
		StatusCode:     statusCode,
	}
}

// Failure builds a failed envelope with a zero (null) payload.
func Failure[T any](message string, statusCode int) Envelope[T] {
	var zero T
	return Envelope[T]{
		Success:        false,
		Message:        message,
		ResponseObject: zero,
		StatusCode:     statusCode,
	}
}

// Internal is the generic 500 failure used when a store error must not leak.
func Internal[T any](message string) Envelope[T] {
	return Failure[T](message, http.StatusInternalServerError)
}

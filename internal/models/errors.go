package models

import "errors"

var (
	// ErrNotFound is returned when a document ID does not exist in the store.
	// Reads and deletes on absent IDs both report it; a repeated delete is
	// NotFound, not success.
	ErrNotFound = errors.New("document not found")

	// ErrNoResults is returned by the RAG composer when similarity search
	// yields nothing to ground an answer on.
	ErrNoResults = errors.New("no relevant documents found")

	// ErrEmptyContent rejects documents or queries with empty text.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrNotConnected indicates the store had no usable connection and the
	// implicit reconnect attempt failed.
	ErrNotConnected = errors.New("store is not connected")

	// ErrDimensionMismatch indicates a vector whose length does not match
	// the collection's configured embedding dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

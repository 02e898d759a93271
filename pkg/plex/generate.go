package plex

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_plex_client.go github.com/kasuboski/mirra/pkg/plex IPlex

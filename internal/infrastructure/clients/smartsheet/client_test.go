package smartsheet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSheet_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/2.0/sheets/123", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 123,
			"name": "AI Use Cases",
			"columns": [{"id": 1, "title": "Project Name", "index": 0}],
			"rows": [{"id": 9, "rowNumber": 1, "cells": [{"columnId": 1, "value": "Copilot", "displayValue": "Copilot"}]}]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "secret", time.Second)
	sheet, err := client.GetSheet(context.Background(), "123")
	require.NoError(t, err)

	assert.Equal(t, "AI Use Cases", sheet.Name)
	require.Len(t, sheet.Columns, 1)
	assert.Equal(t, "Project Name", sheet.Columns[0].Title)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "Copilot", sheet.Rows[0].Cells[0].DisplayValue)
}

func TestGetSheet_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "secret", time.Second).GetSheet(context.Background(), "123")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Equal(t, "Smartsheet API returned 403: Forbidden", statusErr.Error())
	assert.NotContains(t, err.Error(), "secret")
}

func TestGetSheet_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "secret", time.Second).GetSheet(context.Background(), "123")
	assert.Error(t, err)
}

func TestGetSheet_RequiresSheetID(t *testing.T) {
	_, err := NewClient("http://unused", "secret", time.Second).GetSheet(context.Background(), " ")
	assert.Error(t, err)
}

func TestHasToken(t *testing.T) {
	assert.False(t, NewClient("http://x", "  ", 0).HasToken())
	assert.True(t, NewClient("http://x", "t", 0).HasToken())
}

// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestModelsClient_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("expected /v1/models, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("expected Authorization Bearer test-key, got %s", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"object":"list","data":[
			{"id":"gpt-4o-mini","object":"model","created":1721172741,"owned_by":"system"},
			{"id":"gpt-4.1","object":"model","created":1744316542,"owned_by":"system"}
		]}`)
	}))
	defer srv.Close()

	models, err := NewModelsClient(srv.URL+"/v1/", "test-key").ListModels(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("got %d models, want 2", len(models))
	}
	if models[0].ID != "gpt-4.1" || models[1].ID != "gpt-4o-mini" {
		t.Errorf("models not sorted: %+v", models)
	}
	if models[0].OwnedBy != "system" || models[0].Created != 1744316542 {
		t.Errorf("models[0] = %+v", models[0])
	}
}

func TestModelsClient_ListModels_Error(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
	}))
	defer srv.Close()

	_, err := NewModelsClient(srv.URL+"/v1/", "test-key").ListModels(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1 (no retries)", calls)
	}
}

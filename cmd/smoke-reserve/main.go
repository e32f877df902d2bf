// Command smoke-reserve drives a running reserva-api through the full
// reservation lifecycle and fails loudly on any deviation.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

func main() {
	base := os.Getenv("RESERVA_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	client := &http.Client{Timeout: 5 * time.Second}

	adminToken := obtainToken(client, base, "smoke-admin", []string{"admin"})
	memberToken := obtainToken(client, base, "smoke-member", []string{"member"})

	taskID := asString(request(client, base, http.MethodPost, "/v1/tasks", adminToken,
		map[string]any{"title": fmt.Sprintf("smoke-task-%d", time.Now().UnixNano())},
		http.StatusCreated)["id"])

	resID := asString(request(client, base, http.MethodPost, "/v1/reservations", memberToken,
		map[string]any{"task_id": taskID, "comment": "smoke run"},
		http.StatusCreated)["id"])

	approved := request(client, base, http.MethodPost, "/v1/reservations/"+resID+"/approve", adminToken,
		nil, http.StatusOK)
	if approved["status"] != "approved" {
		log.Fatalf("approve left status %v", approved["status"])
	}

	tk := request(client, base, http.MethodGet, "/v1/tasks/"+taskID, memberToken, nil, http.StatusOK)
	if tk["available"] != false {
		log.Fatalf("task still available after approve")
	}

	returned := request(client, base, http.MethodPost, "/v1/reservations/"+resID+"/return", adminToken,
		nil, http.StatusOK)
	if returned["status"] != "returned" {
		log.Fatalf("return left status %v", returned["status"])
	}

	tk = request(client, base, http.MethodGet, "/v1/tasks/"+taskID, memberToken, nil, http.StatusOK)
	if tk["available"] != true {
		log.Fatalf("task not released after return")
	}

	fmt.Printf("✅ reservation smoke test passed: task=%s reservation=%s\n", taskID, resID)
}

func obtainToken(client *http.Client, base, userID string, roles []string) string {
	payload := request(client, base, http.MethodPost, "/v1/auth/token", "",
		map[string]any{"user": userID, "roles": roles}, http.StatusOK)
	token := asString(payload["token"])
	if token == "" {
		log.Fatalf("empty token for %s", userID)
	}
	return token
}

func request(client *http.Client, base, method, path, token string, body any, wantStatus int) map[string]any {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("marshal %s %s: %v", method, path, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, base+path, reader)
	if err != nil {
		log.Fatalf("new request %s %s: %v", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		log.Fatalf("%s %s: status %d, want %d", method, path, resp.StatusCode, wantStatus)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Fatalf("decode %s %s: %v", method, path, err)
	}
	return payload
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

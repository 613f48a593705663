package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hrapp/hr-management/internal/storage"
	"github.com/hrapp/hr-management/internal/transport/rest"
	"github.com/hrapp/hr-management/pkg/logger"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted end-to-end flow against the simulated backend",
	Long:  `Drive the simulated backend through a full lifecycle: registration, authentication, department and employee setup, a workflow, token refresh and revocation.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSimulation()
	},
}

func runSimulation() {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	lg := logger.LoggerWrapper()

	backend, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Source)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}

	sim, err := rest.NewSimulator(cfg, backend, nil, lg)
	if err != nil {
		log.Fatalf("failed to assemble simulator: %v", err)
	}

	client, err := sim.Client()
	if err != nil {
		log.Fatalf("failed to build client: %v", err)
	}

	base := cfg.Simulator.Origin

	fmt.Println("== register first account (becomes admin)")
	call(client, http.MethodPost, base+"/accounts/register", "", map[string]any{
		"title":           "Ms",
		"firstName":       "Ada",
		"lastName":        "Admin",
		"email":           "ada@example.com",
		"password":        "sup3rsecret",
		"confirmPassword": "sup3rsecret",
	})

	fmt.Println("== authenticate")
	auth := call(client, http.MethodPost, base+"/accounts/authenticate", "", map[string]any{
		"email":    "ada@example.com",
		"password": "sup3rsecret",
	})
	token, _ := auth["jwtToken"].(string)
	if token == "" {
		log.Fatal("authenticate did not return a jwtToken")
	}

	fmt.Println("== create department")
	dept := call(client, http.MethodPost, base+"/departments", token, map[string]any{
		"name":        "Engineering",
		"description": "Builds the product",
	})

	fmt.Println("== register second account and verify it")
	call(client, http.MethodPost, base+"/accounts/register", "", map[string]any{
		"firstName":       "Eve",
		"lastName":        "Employee",
		"email":           "eve@example.com",
		"password":        "sup3rsecret",
		"confirmPassword": "sup3rsecret",
	})
	verifyToken := verificationTokenFor(sim, "eve@example.com")
	call(client, http.MethodPost, base+"/accounts/verify-email", "", map[string]any{
		"token": verifyToken,
	})

	fmt.Println("== create employee record for the second account")
	call(client, http.MethodPost, base+"/employees", token, map[string]any{
		"employeeId":   "EMP001",
		"position":     "Engineer",
		"userId":       2,
		"departmentId": dept["id"],
		"hireDate":     time.Now().Format("2006-01-02"),
	})

	fmt.Println("== raise an onboarding workflow")
	call(client, http.MethodPost, base+"/api/workflows", "", map[string]any{
		"type":       "Onboarding",
		"details":    "Setup workstation",
		"employeeId": "1",
	})

	fmt.Println("== refresh the session via cookie")
	refreshed := call(client, http.MethodPost, base+"/accounts/refresh-token", "", nil)
	token, _ = refreshed["jwtToken"].(string)

	fmt.Println("== list accounts")
	callRaw(client, http.MethodGet, base+"/accounts", token, nil)

	fmt.Println("== revoke the refresh token")
	call(client, http.MethodPost, base+"/accounts/revoke-token", token, map[string]any{})

	fmt.Println("simulation complete")
}

// verificationTokenFor reads the token that the simulated email would have
// carried, standing in for the user clicking the link.
func verificationTokenFor(sim *rest.Simulator, email string) string {
	sim.Store.Lock()
	defer sim.Store.Unlock()
	acct := sim.Store.AccountByEmail(email)
	if acct == nil {
		log.Fatalf("no account for %s", email)
	}
	return acct.VerificationToken
}

func call(client *http.Client, method, url, token string, body any) map[string]any {
	data := callRaw(client, method, url, token, body)
	out := map[string]any{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			// list responses and null bodies land here; fine for the script
			return out
		}
	}
	return out
}

func callRaw(client *http.Client, method, url, token string, body any) []byte {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		log.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("failed to read response: %v", err)
	}

	fmt.Printf("%s %s -> %d %s\n", method, url, resp.StatusCode, bytes.TrimSpace(data))
	return data
}

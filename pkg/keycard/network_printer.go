package keycard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NetworkPrinter sends print jobs to the front-desk print server over HTTP
type NetworkPrinter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NetworkConfig holds configuration for the print server connection
type NetworkConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewNetworkPrinter creates a printer client for the print server
func NewNetworkPrinter(config NetworkConfig) *NetworkPrinter {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &NetworkPrinter{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// printRequest is the job payload sent to the print server
type printRequest struct {
	RoomNumber int    `json:"room_number"`
	CardType   string `json:"card_type"`
}

// printResponse is the print server's reply
type printResponse struct {
	Status         string `json:"status"`
	Comment        string `json:"comment"`
	RemainingCards int    `json:"remaining_cards"`
	ErrCode        string `json:"err_code"`
}

// PrintKeycard submits a print job for the given room
func (p *NetworkPrinter) PrintKeycard(roomNumber int) error {
	jobReq := printRequest{
		RoomNumber: roomNumber,
		CardType:   "guest",
	}

	jsonData, err := json.Marshal(jobReq)
	if err != nil {
		return fmt.Errorf("failed to marshal print request: %w", err)
	}

	url := fmt.Sprintf("%s/print", p.baseURL)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create print request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrinterUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read print response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: print server returned status %d", ErrPrinterUnavailable, resp.StatusCode)
	}

	var jobResp printResponse
	if err := json.Unmarshal(body, &jobResp); err != nil {
		return fmt.Errorf("failed to parse print response: %w", err)
	}

	if jobResp.Status != "success" {
		return fmt.Errorf("%w: %s (error code: %s)", ErrPrinterUnavailable, jobResp.Comment, jobResp.ErrCode)
	}

	return nil
}

// Name returns the name of this printer implementation
func (p *NetworkPrinter) Name() string {
	return "Network Keycard Printer"
}

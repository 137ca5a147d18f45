package orcid

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const baseURL = "https://pub.orcid.org/v3.0"

// Client reads the public ORCID registry. Used to cross-check an expert's
// publication list during graph loading.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Work is one publication entry from an ORCID works listing.
type Work struct {
	Title string `json:"title"`
	Year  string `json:"year"`
	DOI   string `json:"doi"`
	URL   string `json:"url"`
}

type worksResponse struct {
	Group []struct {
		WorkSummary []struct {
			Title struct {
				Title struct {
					Value string `json:"value"`
				} `json:"title"`
			} `json:"title"`
			PublicationDate *struct {
				Year struct {
					Value string `json:"value"`
				} `json:"year"`
			} `json:"publication-date"`
			ExternalIDs struct {
				ExternalID []struct {
					Type  string `json:"external-id-type"`
					Value string `json:"external-id-value"`
				} `json:"external-id"`
			} `json:"external-ids"`
			URL *struct {
				Value string `json:"value"`
			} `json:"url"`
		} `json:"work-summary"`
	} `json:"group"`
}

// GetWorks lists the public works registered for an ORCID id.
func (c *Client) GetWorks(orcidID string) ([]Work, error) {
	reqURL := fmt.Sprintf("%s/%s/works", baseURL, orcidID)

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ORCID API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ORCID API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var listing worksResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var works []Work
	for _, group := range listing.Group {
		for _, summary := range group.WorkSummary {
			work := Work{Title: summary.Title.Title.Value}
			if summary.PublicationDate != nil {
				work.Year = summary.PublicationDate.Year.Value
			}
			for _, extID := range summary.ExternalIDs.ExternalID {
				if extID.Type == "doi" {
					work.DOI = extID.Value
					break
				}
			}
			if summary.URL != nil {
				work.URL = summary.URL.Value
			}
			works = append(works, work)
		}
	}
	return works, nil
}

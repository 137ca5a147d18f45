package openalex

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openalex.org"

// Client is an OpenAlex API client used to resolve an expert's expertise
// profile from the topics attached to their works.
// OpenAlex is free and fast when the polite pool email is supplied.
type Client struct {
	httpClient *http.Client
	baseURL    string
	email      string // for polite pool — faster responses
}

// NewClient creates a new OpenAlex API client.
// email is optional but recommended — it puts you in the "polite pool" for faster responses.
func NewClient(baseURL, email string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
	}
}

// Author is the subset of an OpenAlex author record the loader needs.
type Author struct {
	ID          string `json:"id"` // https://openalex.org/A...
	DisplayName string `json:"display_name"`
	ORCID       string `json:"orcid"`
	WorksCount  int    `json:"works_count"`
}

// TopicTriple is one (domain, field, subfield) classification from a work's
// topics. Subfields feed the skill channel.
type TopicTriple struct {
	Domain   string
	Field    string
	Subfield string
}

type authorsResponse struct {
	Results []Author `json:"results"`
}

type worksResponse struct {
	Meta struct {
		Count   int `json:"count"`
		Page    int `json:"page"`
		PerPage int `json:"per_page"`
	} `json:"meta"`
	Results []workResult `json:"results"`
}

type workResult struct {
	ID     string `json:"id"`
	Topics []struct {
		DisplayName string `json:"display_name"`
		Domain      struct {
			DisplayName string `json:"display_name"`
		} `json:"domain"`
		Field struct {
			DisplayName string `json:"display_name"`
		} `json:"field"`
		Subfield struct {
			DisplayName string `json:"display_name"`
		} `json:"subfield"`
	} `json:"topics"`
}

// GetAuthorByORCID looks up the OpenAlex author record for an ORCID id. A
// missing author returns (nil, nil).
func (c *Client) GetAuthorByORCID(orcid string) (*Author, error) {
	params := url.Values{}
	params.Set("filter", "orcid:"+orcid)

	var resp authorsResponse
	if err := c.get("/authors", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}

// GetAuthorTopics pages through the author's works and returns the distinct
// topic triples across them. maxWorks bounds how many works are scanned;
// 0 means 100.
func (c *Client) GetAuthorTopics(authorID string, maxWorks int) ([]TopicTriple, error) {
	if maxWorks <= 0 {
		maxWorks = 100
	}

	perPage := 100
	if maxWorks < perPage {
		perPage = maxWorks
	}

	seen := make(map[TopicTriple]struct{})
	var triples []TopicTriple

	scanned := 0
	for page := 1; scanned < maxWorks; page++ {
		params := url.Values{}
		params.Set("filter", "authorships.author.id:"+authorID)
		params.Set("per_page", fmt.Sprintf("%d", perPage))
		params.Set("page", fmt.Sprintf("%d", page))

		var resp worksResponse
		if err := c.get("/works", params, &resp); err != nil {
			return nil, err
		}
		if len(resp.Results) == 0 {
			break
		}

		for i := range resp.Results {
			scanned++
			for _, t := range resp.Results[i].Topics {
				triple := TopicTriple{
					Domain:   t.Domain.DisplayName,
					Field:    t.Field.DisplayName,
					Subfield: t.Subfield.DisplayName,
				}
				if triple.Domain == "" && triple.Field == "" && triple.Subfield == "" {
					continue
				}
				if _, dup := seen[triple]; dup {
					continue
				}
				seen[triple] = struct{}{}
				triples = append(triples, triple)
			}
			if scanned >= maxWorks {
				break
			}
		}

		if len(resp.Results) < perPage {
			break
		}
	}

	return triples, nil
}

func (c *Client) get(path string, params url.Values, out interface{}) error {
	// Polite pool — OpenAlex recommends providing email for faster responses
	if c.email != "" {
		params.Set("mailto", c.email)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	ua := "ExpertDiscovery/1.0 (research-matching)"
	if c.email != "" {
		ua = fmt.Sprintf("ExpertDiscovery/1.0 (mailto:%s)", c.email)
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("OpenAlex API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("OpenAlex API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

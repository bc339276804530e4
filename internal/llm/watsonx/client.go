// Package watsonx implements the generate.Generator capability against the
// IBM watsonx text-generation endpoint: an IAM token exchange followed by one
// POST per summarization.
package watsonx

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"intellidoc/internal/llm/generate"
)

// DefaultIAMEndpoint exchanges an IBM Cloud API key for a short-lived
// access token.
const DefaultIAMEndpoint = "https://iam.cloud.ibm.com/identity/token"

// tokenExpiryMargin refreshes tokens slightly before the server-side expiry.
const tokenExpiryMargin = 60 * time.Second

type Config struct {
	Endpoint    string
	IAMEndpoint string
	APIKey      string
	ProjectID   string
	ModelID     string
	Params      generate.Params
	Timeout     time.Duration
}

type Client struct {
	http      *resty.Client
	endpoint  string
	iamURL    string
	apiKey    string
	projectID string
	modelID   string
	params    generate.Params

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("watsonx: API key is required")
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("watsonx: endpoint is required")
	}
	if cfg.IAMEndpoint == "" {
		cfg.IAMEndpoint = DefaultIAMEndpoint
	}
	if cfg.Params.MaxNewTokens <= 0 {
		cfg.Params = generate.DefaultParams()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	return &Client{
		http:      resty.New().SetTimeout(cfg.Timeout),
		endpoint:  cfg.Endpoint,
		iamURL:    cfg.IAMEndpoint,
		apiKey:    cfg.APIKey,
		projectID: cfg.ProjectID,
		modelID:   cfg.ModelID,
		params:    cfg.Params,
	}, nil
}

type iamResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type generationRequest struct {
	Input      string               `json:"input"`
	ModelID    string               `json:"model_id"`
	ProjectID  string               `json:"project_id,omitempty"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	DecodingMethod string `json:"decoding_method"`
	MaxNewTokens   int    `json:"max_new_tokens"`
}

type generationResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

// accessToken returns a cached IAM token, exchanging the API key for a fresh
// one when none is held or the held one is close to expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpiryMargin)) {
		return c.token, nil
	}

	var tok iamResponse
	rsp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"grant_type": "urn:ibm:params:oauth:grant-type:apikey",
			"apikey":     c.apiKey,
		}).
		SetResult(&tok).
		Post(c.iamURL)
	if err != nil {
		return "", fmt.Errorf("iam token request: %w", err)
	}
	if rsp.IsError() {
		return "", fmt.Errorf("iam token request: status %d: %s", rsp.StatusCode(), rsp.String())
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("iam token request: empty access token")
	}

	c.token = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.token, nil
}

// chatInput wraps the prompt pair with the granite chat role tokens the
// model was instruction-tuned on.
func chatInput(system, user string) string {
	return fmt.Sprintf(
		"<|start_of_role|>system<|end_of_role|>%s<|end_of_text|>\n"+
			"<|start_of_role|>user<|end_of_role|>%s"+
			"<|start_of_role|>assistant<|end_of_role|>",
		system, user,
	)
}

func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return "", err
	}

	req := generationRequest{
		Input:     chatInput(system, user),
		ModelID:   c.modelID,
		ProjectID: c.projectID,
		Parameters: generationParameters{
			DecodingMethod: c.params.DecodingMethod,
			MaxNewTokens:   c.params.MaxNewTokens,
		},
	}

	var out generationResponse
	rsp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	if rsp.IsError() {
		return "", fmt.Errorf("generation request: status %d: %s", rsp.StatusCode(), rsp.String())
	}
	if len(out.Results) == 0 {
		return "", fmt.Errorf("generation request: no results in response")
	}
	return strings.TrimSpace(out.Results[0].GeneratedText), nil
}

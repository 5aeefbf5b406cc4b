package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Config represents the configuration for the Atrium API client
type Config struct {
	// BaseURL is the base URL of the Atrium API
	BaseURL string
	// Token is the bearer token used on authenticated endpoints
	Token string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:8080",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Client is the Atrium API client
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new API client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.config.Token = token
}

// User represents an Atrium account as returned by the API
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Status    string    `json:"status"`
}

// AuthResponse represents the result of a signup or login call
type AuthResponse struct {
	Ok    bool   `json:"ok"`
	User  *User  `json:"user"`
	Token string `json:"token"`
	Error string `json:"error,omitempty"`
}

// SignupRequest represents an account registration request
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Signup registers a new account and stores the returned token on the client
func (c *Client) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	endpoint := fmt.Sprintf("%s/api/auth/signup", c.config.BaseURL)
	var resp AuthResponse
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return &resp, errors.New(resp.Error)
	}

	c.config.Token = resp.Token
	return &resp, nil
}

// LoginRequest represents a credentials login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and stores the returned token on the client
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	endpoint := fmt.Sprintf("%s/api/auth/login", c.config.BaseURL)
	var resp AuthResponse
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return &resp, errors.New(resp.Error)
	}

	c.config.Token = resp.Token
	return &resp, nil
}

// Organization represents an organization as returned by the API
type Organization struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	OwnerID  uuid.UUID `json:"owner_id"`
	IsActive bool      `json:"is_active"`
}

// OrganizationResponse represents a single-organization response
type OrganizationResponse struct {
	Ok           bool          `json:"ok"`
	Organization *Organization `json:"organization"`
	Error        string        `json:"error,omitempty"`
}

// CreateOrganizationRequest represents an organization creation request
type CreateOrganizationRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// CreateOrganization creates an organization owned by the caller
func (c *Client) CreateOrganization(ctx context.Context, req *CreateOrganizationRequest) (*Organization, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	endpoint := fmt.Sprintf("%s/api/organizations", c.config.BaseURL)
	var resp OrganizationResponse
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Organization, nil
}

// ListOrganizations lists the caller's organizations
func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	endpoint := fmt.Sprintf("%s/api/organizations", c.config.BaseURL)
	var resp struct {
		Ok            bool           `json:"ok"`
		Organizations []Organization `json:"organizations"`
		Error         string         `json:"error,omitempty"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Organizations, nil
}

// InviteMemberRequest represents a member invitation request
type InviteMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Invitation represents an invitation as returned by the API
type Invitation struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
}

// InviteMember invites an email address into an organization
func (c *Client) InviteMember(ctx context.Context, orgID uuid.UUID, req *InviteMemberRequest) (*Invitation, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Email == "" || req.Role == "" {
		return nil, errors.New("email and role are required")
	}

	endpoint := fmt.Sprintf("%s/api/organizations/%s/invitations", c.config.BaseURL, orgID)
	var resp struct {
		Ok         bool        `json:"ok"`
		Invitation *Invitation `json:"invitation"`
		Error      string      `json:"error,omitempty"`
	}
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Invitation, nil
}

// AcceptInvitation redeems an invitation token for the authenticated user
func (c *Client) AcceptInvitation(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token is required")
	}

	endpoint := fmt.Sprintf("%s/api/invitations/%s/accept", c.config.BaseURL, token)
	var resp struct {
		Ok    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return err
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	return nil
}

// Conversation represents a conversation as returned by the API
type Conversation struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	AgentID        uuid.UUID  `json:"agent_id"`
	Title          *string    `json:"title"`
	TitleStatus    string     `json:"title_status"`
	MessageCount   int64      `json:"message_count"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty"`
}

// ConversationResponse represents a single-conversation response
type ConversationResponse struct {
	Ok           bool          `json:"ok"`
	Conversation *Conversation `json:"conversation"`
	Error        string        `json:"error,omitempty"`
}

// CreateConversationRequest represents a conversation creation request
type CreateConversationRequest struct {
	AgentID uuid.UUID `json:"agent_id"`
	Message string    `json:"message"`
}

// CreateConversation starts a conversation. A nil orgID targets the caller's
// personal workspace.
func (c *Client) CreateConversation(ctx context.Context, orgID *uuid.UUID, req *CreateConversationRequest) (*Conversation, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Message == "" {
		return nil, errors.New("message is required")
	}

	endpoint := fmt.Sprintf("%s/conversations", c.workspaceBase(orgID))
	var resp ConversationResponse
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Conversation, nil
}

// GetConversation fetches a conversation by ID
func (c *Client) GetConversation(ctx context.Context, orgID *uuid.UUID, convID uuid.UUID) (*Conversation, error) {
	endpoint := fmt.Sprintf("%s/conversations/%s", c.workspaceBase(orgID), convID)
	var resp ConversationResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Conversation, nil
}

// RenameConversation sets a custom title, permanently opting the
// conversation out of automatic titling
func (c *Client) RenameConversation(ctx context.Context, orgID *uuid.UUID, convID uuid.UUID, title string) (*Conversation, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}

	endpoint := fmt.Sprintf("%s/conversations/%s/rename", c.workspaceBase(orgID), convID)
	var resp ConversationResponse
	if err := c.post(ctx, endpoint, map[string]string{"title": title}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Conversation, nil
}

// UpdateConversationTitle sets the title through the generic update
// surface. Like RenameConversation it locks the title as custom.
func (c *Client) UpdateConversationTitle(ctx context.Context, orgID *uuid.UUID, convID uuid.UUID, title string) (*Conversation, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}

	endpoint := fmt.Sprintf("%s/conversations/%s", c.workspaceBase(orgID), convID)
	var resp ConversationResponse
	if err := c.patch(ctx, endpoint, map[string]string{"title": title}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Conversation, nil
}

// GenerateTitle asks the server to finalize the conversation title
func (c *Client) GenerateTitle(ctx context.Context, orgID *uuid.UUID, convID uuid.UUID) (*Conversation, error) {
	endpoint := fmt.Sprintf("%s/conversations/%s/title", c.workspaceBase(orgID), convID)
	var resp struct {
		Ok           bool          `json:"ok"`
		Conversation *Conversation `json:"conversation"`
		Error        string        `json:"error,omitempty"`
	}
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Conversation, nil
}

// DeleteConversation deletes a conversation and its messages
func (c *Client) DeleteConversation(ctx context.Context, orgID *uuid.UUID, convID uuid.UUID) error {
	endpoint := fmt.Sprintf("%s/conversations/%s", c.workspaceBase(orgID), convID)
	return c.delete(ctx, endpoint)
}

func (c *Client) workspaceBase(orgID *uuid.UUID) string {
	if orgID != nil {
		return fmt.Sprintf("%s/api/organizations/%s", c.config.BaseURL, orgID)
	}
	return c.config.BaseURL + "/api"
}

// APIError defines a standardized error response from the API
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s (Status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// post performs a POST request to the specified endpoint with the given request and unmarshals the response into the specified response object
func (c *Client) post(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	return c.send(ctx, http.MethodPost, endpoint, req, resp)
}

// patch performs a PATCH request to the specified endpoint
func (c *Client) patch(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	return c.send(ctx, http.MethodPatch, endpoint, req, resp)
}

func (c *Client) send(ctx context.Context, method, endpoint string, req interface{}, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Marshal request to JSON
	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	// Send request
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return decodeAPIError(httpResp)
	}

	// Decode response
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// get performs a GET request to the specified endpoint and unmarshals the response into the specified response object
func (c *Client) get(ctx context.Context, endpoint string, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	c.authorize(httpReq)

	// Send request
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return decodeAPIError(httpResp)
	}

	// Decode response
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// delete performs a DELETE request to the specified endpoint
func (c *Client) delete(ctx context.Context, endpoint string) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	// Create HTTP request
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(httpReq)

	// Send request
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return decodeAPIError(httpResp)
	}

	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
}

func decodeAPIError(httpResp *http.Response) error {
	var apiErr APIError
	if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil {
		// If we can't decode the error, create a generic one
		return &APIError{
			StatusCode: httpResp.StatusCode,
			Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
		}
	}

	apiErr.StatusCode = httpResp.StatusCode
	return &apiErr
}

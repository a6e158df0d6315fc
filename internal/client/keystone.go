package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/clouddiag/openstack-advisor/internal/config"
)

const subjectTokenHeader = "X-Subject-Token"

// Session holds the keystone token for the configured project. Token fetches
// are serialized and the cached token is reused until Invalidate or expiry;
// all fetch operations share one Session by reference.
type Session struct {
	authURL    string
	credential config.OpenStackConfig
	httpClient *http.Client

	mu        sync.Mutex
	token     string
	projectID string
	expiresAt time.Time
}

func NewSession(cfg config.OpenStackConfig, httpClient *http.Client) *Session {
	return &Session{
		authURL:    cfg.AuthURL,
		credential: cfg,
		httpClient: httpClient,
	}
}

// Token returns the cached token, authenticating against keystone when no
// valid token is held.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && (s.expiresAt.IsZero() || time.Now().Before(s.expiresAt)) {
		return s.token, nil
	}
	if err := s.authenticate(ctx); err != nil {
		return "", err
	}
	return s.token, nil
}

// ProjectID returns the scoped project id, authenticating first if needed.
func (s *Session) ProjectID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectID != "" {
		return s.projectID, nil
	}
	if err := s.authenticate(ctx); err != nil {
		return "", err
	}
	return s.projectID, nil
}

// Invalidate drops the cached token so the next call re-authenticates.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.projectID = ""
	s.expiresAt = time.Time{}
}

type tokenResponse struct {
	Token struct {
		ExpiresAt time.Time `json:"expires_at"`
		Project   struct {
			ID string `json:"id"`
		} `json:"project"`
	} `json:"token"`
}

// authenticate performs a password auth scoped to the configured project.
// Callers must hold s.mu.
func (s *Session) authenticate(ctx context.Context) error {
	body, err := json.Marshal(passwordAuthRequest(s.credential))
	if err != nil {
		return NewErrAuthentication(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.authURL+"/auth/tokens", bytes.NewReader(body))
	if err != nil {
		return NewErrAuthentication(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return NewErrAuthentication(errors.Wrap(err, "keystone request failed"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return NewErrAuthentication(fmt.Errorf("keystone returned status %d", resp.StatusCode))
	}

	token := resp.Header.Get(subjectTokenHeader)
	if token == "" {
		return NewErrAuthentication(fmt.Errorf("keystone response missing %s header", subjectTokenHeader))
	}

	var parsed tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return NewErrAuthentication(errors.Wrap(err, "decoding keystone response"))
	}

	s.token = token
	s.projectID = parsed.Token.Project.ID
	s.expiresAt = parsed.Token.ExpiresAt
	zap.S().Named("keystone").Debugw("authenticated", "project_id", s.projectID, "expires_at", s.expiresAt)
	return nil
}

func passwordAuthRequest(cfg config.OpenStackConfig) map[string]any {
	return map[string]any{
		"auth": map[string]any{
			"identity": map[string]any{
				"methods": []string{"password"},
				"password": map[string]any{
					"user": map[string]any{
						"name":     cfg.Username,
						"domain":   map[string]any{"name": cfg.UserDomainName},
						"password": cfg.Password,
					},
				},
			},
			"scope": map[string]any{
				"project": map[string]any{
					"name":   cfg.ProjectName,
					"domain": map[string]any{"name": cfg.UserDomainName},
				},
			},
		},
	}
}

package vercel_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/sitekit"
	"github.com/fwojciec/sitekit/vercel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts a server running handler and returns a client for
// project "prj_1" in team "team_1" pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *vercel.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := vercel.NewClient("tok", "prj_1", vercel.WithBaseURL(server.URL), vercel.WithTeamID("team_1"))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	_, err := vercel.NewClient("", "prj_1")
	assert.Equal(t, sitekit.EUNAUTHORIZED, sitekit.ErrorCode(err))

	_, err = vercel.NewClient("tok", "")
	assert.Equal(t, sitekit.EINVALID, sitekit.ErrorCode(err))
}

func TestClient_ListDeployments(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v6/deployments", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "team_1", r.URL.Query().Get("teamId"))
		assert.Equal(t, "prj_1", r.URL.Query().Get("projectId"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		writeJSON(w, http.StatusOK, map[string]any{
			"deployments": []map[string]any{
				{"uid": "dpl_2", "name": "site", "url": "site-2.vercel.app", "state": "READY", "target": "production", "created": 1700000000000},
				{"uid": "dpl_1", "name": "site", "url": "site-1.vercel.app", "state": "ERROR", "created": 1690000000000},
			},
		})
	})

	deployments, err := c.ListDeployments(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, deployments, 2)
	assert.Equal(t, "dpl_2", deployments[0].ID)
	assert.Equal(t, "site-2.vercel.app", deployments[0].URL)
	assert.Equal(t, "READY", deployments[0].State)
	assert.Equal(t, "production", deployments[0].Target)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), deployments[0].CreatedAt)
}

func TestClient_Domains(t *testing.T) {
	t.Parallel()

	t.Run("lists project domains", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v9/projects/prj_1/domains", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{
				"domains": []map[string]any{
					{"name": "smithlaw.law", "verified": true},
					{"name": "www.smithlaw.law", "verified": true, "redirect": "smithlaw.law"},
				},
			})
		})

		domains, err := c.ListDomains(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []*sitekit.Domain{
			{Name: "smithlaw.law", Verified: true},
			{Name: "www.smithlaw.law", Verified: true, Redirect: "smithlaw.law"},
		}, domains)
	})

	t.Run("adds a domain", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v10/projects/prj_1/domains", r.URL.Path)
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "smithlaw.law", body["name"])
			writeJSON(w, http.StatusOK, map[string]any{"name": "smithlaw.law", "verified": false})
		})

		domain, err := c.AddDomain(context.Background(), "smithlaw.law")

		require.NoError(t, err)
		assert.Equal(t, "smithlaw.law", domain.Name)
		assert.False(t, domain.Verified)
	})

	t.Run("maps conflict when adding a domain in use", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusConflict, map[string]any{
				"error": map[string]string{"code": "domain_already_in_use", "message": "The domain is already in use."},
			})
		})

		_, err := c.AddDomain(context.Background(), "smithlaw.law")

		require.Error(t, err)
		assert.Equal(t, sitekit.ECONFLICT, sitekit.ErrorCode(err))
		assert.Contains(t, sitekit.ErrorMessage(err), "domain_already_in_use")
		assert.Contains(t, sitekit.ErrorMessage(err), "The domain is already in use.")
	})

	t.Run("removes a domain", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/v9/projects/prj_1/domains/old.smithlaw.law", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{})
		})

		require.NoError(t, c.RemoveDomain(context.Background(), "old.smithlaw.law"))
	})
}

func TestClient_Aliases(t *testing.T) {
	t.Parallel()

	t.Run("lists aliases", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v4/aliases", r.URL.Path)
			assert.Equal(t, "prj_1", r.URL.Query().Get("projectId"))
			writeJSON(w, http.StatusOK, map[string]any{
				"aliases": []map[string]any{{"uid": "als_1", "alias": "smithlaw.law", "deploymentId": "dpl_2"}},
			})
		})

		aliases, err := c.ListAliases(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []*sitekit.Alias{{ID: "als_1", Alias: "smithlaw.law", DeploymentID: "dpl_2"}}, aliases)
	})

	t.Run("assigns an alias", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v2/deployments/dpl_2/aliases", r.URL.Path)
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "smithlaw.law", body["alias"])
			writeJSON(w, http.StatusOK, map[string]any{"uid": "als_9", "alias": "smithlaw.law"})
		})

		alias, err := c.SetAlias(context.Background(), "dpl_2", "smithlaw.law")

		require.NoError(t, err)
		assert.Equal(t, &sitekit.Alias{ID: "als_9", Alias: "smithlaw.law", DeploymentID: "dpl_2"}, alias)
	})

	t.Run("rejects empty alias", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		_, err := c.SetAlias(context.Background(), "dpl_2", "")

		assert.Equal(t, sitekit.EINVALID, sitekit.ErrorCode(err))
	})
}

func TestClient_DNSRecords(t *testing.T) {
	t.Parallel()

	t.Run("lists records", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v4/domains/smithlaw.law/records", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{
				"records": []map[string]any{{"id": "rec_1", "name": "www", "type": "CNAME", "value": "cname.vercel-dns.com", "ttl": 60}},
			})
		})

		records, err := c.ListDNSRecords(context.Background(), "smithlaw.law")

		require.NoError(t, err)
		assert.Equal(t, []*sitekit.DNSRecord{{ID: "rec_1", Name: "www", Type: "CNAME", Value: "cname.vercel-dns.com", TTL: 60}}, records)
	})

	t.Run("creates a record and sets its ID", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v2/domains/smithlaw.law/records", r.URL.Path)
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"name": "", "type": "TXT", "value": "google-site-verification=abc"}, body)
			writeJSON(w, http.StatusOK, map[string]any{"uid": "rec_7"})
		})

		record := &sitekit.DNSRecord{Type: "TXT", Value: "google-site-verification=abc"}
		err := c.CreateDNSRecord(context.Background(), "smithlaw.law", record)

		require.NoError(t, err)
		assert.Equal(t, "rec_7", record.ID)
	})

	t.Run("validates the record before sending", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		err := c.CreateDNSRecord(context.Background(), "smithlaw.law", &sitekit.DNSRecord{Type: "BOGUS", Value: "x"})

		assert.Equal(t, sitekit.EINVALID, sitekit.ErrorCode(err))
	})

	t.Run("deletes a record", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/v2/domains/smithlaw.law/records/rec_1", r.URL.Path)
			writeJSON(w, http.StatusOK, map[string]any{})
		})

		require.NoError(t, c.DeleteDNSRecord(context.Background(), "smithlaw.law", "rec_1"))
	})
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   string
	}{
		{status: http.StatusBadRequest, want: sitekit.EINVALID},
		{status: http.StatusUnauthorized, want: sitekit.EUNAUTHORIZED},
		{status: http.StatusForbidden, want: sitekit.EUNAUTHORIZED},
		{status: http.StatusNotFound, want: sitekit.ENOTFOUND},
		{status: http.StatusConflict, want: sitekit.ECONFLICT},
		{status: http.StatusTooManyRequests, want: sitekit.EINTERNAL},
		{status: http.StatusInternalServerError, want: sitekit.EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			var calls int
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls++
				writeJSON(w, tt.status, map[string]any{"error": map[string]string{"code": "x", "message": "boom"}})
			})

			err := c.RemoveDomain(context.Background(), "smithlaw.law")

			require.Error(t, err)
			assert.Equal(t, tt.want, sitekit.ErrorCode(err))
			assert.Equal(t, 1, calls)
		})
	}
}

func TestClient_NonJSONError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	})

	_, err := c.ListDomains(context.Background())

	assert.Equal(t, sitekit.EINTERNAL, sitekit.ErrorCode(err))
	assert.Contains(t, sitekit.ErrorMessage(err), "Bad Gateway")
}

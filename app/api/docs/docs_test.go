package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type document struct {
	Info struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	} `json:"info"`
	Paths               map[string]map[string]json.RawMessage `json:"paths"`
	Definitions         map[string]json.RawMessage            `json:"definitions"`
	SecurityDefinitions map[string]json.RawMessage            `json:"securityDefinitions"`
}

func TestReadDoc(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	doc := document{}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, "GHOSTART Marketplace API", doc.Info.Title)
	require.Equal(t, "1.0", doc.Info.Version)
	require.Contains(t, doc.SecurityDefinitions, "ApiKeyAuth")

	routes := map[string][]string{
		"/health":                   {"get"},
		"/api/nfts":                 {"get"},
		"/api/nfts/{id}":            {"get"},
		"/api/nfts/owner/{address}": {"get"},
		"/api/nfts/list":            {"post"},
		"/api/nfts/mint":            {"post"},
		"/api/stats":                {"get"},
		"/api/admin/pending":        {"get"},
		"/api/admin/approve/{id}":   {"post"},
		"/api/admin/nfts/{id}":      {"put", "delete"},
		"/api/admin/approvals":      {"get"},
	}
	require.Len(t, doc.Paths, len(routes))
	for path, methods := range routes {
		require.Contains(t, doc.Paths, path)
		for _, m := range methods {
			require.Contains(t, doc.Paths[path], m, path)
		}
	}

	for _, def := range []string{"delivery.JsonResponse", "nft.NftRecord", "nft.PendingEntry", "nft.Stats", "nft.MintParams", "nft.Patch"} {
		require.Contains(t, doc.Definitions, def)
	}
}

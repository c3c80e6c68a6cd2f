//go:build e2e

package e2e

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_AdminAuth(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("no token is rejected", func(t *testing.T) {
		resp, err := env.Get("/admin/chunks", "")
		require.NoError(t, err)
		assert.Equal(t, 401, resp.Status)
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		resp, err := env.Get("/admin/chunks", "not-the-token")
		require.NoError(t, err)
		assert.Equal(t, 401, resp.Status)
	})

	t.Run("valid token is accepted", func(t *testing.T) {
		resp, err := env.Get("/admin/chunks", AdminToken)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
	})

	t.Run("public surface needs no token", func(t *testing.T) {
		resp, err := env.Get("/skills", "")
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
	})
}

func TestE2E_KnowledgeLifecycle(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	var chunkID string

	t.Run("create chunk", func(t *testing.T) {
		resp, err := env.Post("/admin/chunks", map[string]string{
			"title":    "Backend Skills",
			"content":  "Extensive experience with Go, PostgreSQL and distributed systems.",
			"category": "skills",
		}, AdminToken)

		var chunk struct {
			ID           string `json:"id"`
			Title        string `json:"title"`
			HasEmbedding bool   `json:"has_embedding"`
		}
		env.MustData(resp, err, &chunk)
		assert.NotEmpty(t, chunk.ID)
		assert.Equal(t, "Backend Skills", chunk.Title)
		assert.True(t, chunk.HasEmbedding)
		chunkID = chunk.ID
	})

	t.Run("update chunk re-reads on list", func(t *testing.T) {
		resp, err := env.Put("/admin/chunks/"+chunkID, map[string]string{
			"title":    "Backend Skills",
			"content":  "Go, PostgreSQL, Kafka and distributed systems.",
			"category": "skills",
		}, AdminToken)
		env.MustData(resp, err, nil)

		listResp, err := env.Get("/admin/chunks", AdminToken)
		var list struct {
			Items []struct {
				ID      string `json:"id"`
				Content string `json:"content"`
			} `json:"items"`
		}
		env.MustData(listResp, err, &list)
		require.Len(t, list.Items, 1)
		assert.Contains(t, list.Items[0].Content, "Kafka")
	})

	t.Run("retrieve finds the chunk", func(t *testing.T) {
		resp, err := env.Get("/assistant/retrieve?q=What+do+you+know+about+PostgreSQL", "")
		var result struct {
			Method string `json:"method"`
			Chunks []struct {
				ID    string  `json:"id"`
				Score float32 `json:"score"`
			} `json:"chunks"`
		}
		env.MustData(resp, err, &result)
		assert.Equal(t, "vector", result.Method)
		require.NotEmpty(t, result.Chunks)
		assert.Equal(t, chunkID, result.Chunks[0].ID)
		assert.Greater(t, result.Chunks[0].Score, float32(0))
	})

	t.Run("delete chunk is idempotent", func(t *testing.T) {
		resp, err := env.Delete("/admin/chunks/"+chunkID, AdminToken)
		var removed struct {
			Removed bool `json:"removed"`
		}
		env.MustData(resp, err, &removed)
		assert.True(t, removed.Removed)

		resp, err = env.Delete("/admin/chunks/"+chunkID, AdminToken)
		env.MustData(resp, err, &removed)
		assert.False(t, removed.Removed)
	})
}

func TestE2E_AssistantGrounding(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("empty knowledge base yields a refusal", func(t *testing.T) {
		resp, err := env.Post("/assistant/chat", map[string]string{
			"query": "What is your favorite color?",
		}, "")
		var chat struct {
			Reply      string `json:"reply"`
			ChunksUsed int    `json:"chunks_used"`
		}
		env.MustData(resp, err, &chat)
		assert.Contains(t, chat.Reply, "not documented")
		assert.Equal(t, 0, chat.ChunksUsed)
	})

	t.Run("answers from ingested profile", func(t *testing.T) {
		settings := map[string]string{
			"site_title":       "Portfolio",
			"profile_document": "# About Me\nI build backend services in Go.\n\n# Skills\nGo, PostgreSQL, Kubernetes.",
		}
		resp, err := env.Put("/admin/settings", settings, AdminToken)
		env.MustData(resp, err, nil)

		var ingested struct {
			Count int `json:"count"`
		}
		resp, err = env.Post("/admin/ingest", nil, AdminToken)
		env.MustData(resp, err, &ingested)
		assert.Equal(t, 2, ingested.Count)

		var chat struct {
			Reply      string `json:"reply"`
			Method     string `json:"method"`
			ChunksUsed int    `json:"chunks_used"`
		}
		resp, err = env.Post("/assistant/chat", map[string]string{
			"query": "Tell me about your Go skills",
		}, "")
		env.MustData(resp, err, &chat)
		assert.Equal(t, "vector", chat.Method)
		assert.Greater(t, chat.ChunksUsed, 0)
		assert.Contains(t, chat.Reply, "Go")
	})

	t.Run("conversations are logged and listable", func(t *testing.T) {
		var log struct {
			Items []struct {
				Query           string `json:"query"`
				RetrievalMethod string `json:"retrieval_method"`
			} `json:"items"`
		}
		resp, err := env.Get("/admin/conversations", AdminToken)
		env.MustData(resp, err, &log)
		require.Len(t, log.Items, 2)
		assert.Equal(t, "Tell me about your Go skills", log.Items[0].Query)
	})
}

func TestE2E_Ingestion(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("inline document replaces the store", func(t *testing.T) {
		var first struct {
			Count int `json:"count"`
		}
		resp, err := env.Post("/admin/ingest", map[string]string{
			"document": "# About\nFirst version of the profile.\n\n# Projects\nA chat server.",
		}, AdminToken)
		env.MustData(resp, err, &first)
		assert.Equal(t, 2, first.Count)

		var second struct {
			Count int `json:"count"`
		}
		resp, err = env.Post("/admin/ingest", map[string]string{
			"document": "# About\nSecond version of the profile.",
		}, AdminToken)
		env.MustData(resp, err, &second)
		assert.Equal(t, 1, second.Count)

		var list struct {
			Items []struct {
				Content string `json:"content"`
			} `json:"items"`
		}
		resp, err = env.Get("/admin/chunks", AdminToken)
		env.MustData(resp, err, &list)
		require.Len(t, list.Items, 1)
		assert.Contains(t, list.Items[0].Content, "Second version")
	})

	t.Run("empty profile document is rejected", func(t *testing.T) {
		resp, err := env.Post("/admin/ingest", nil, AdminToken)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.Status)
	})
}

func TestE2E_Projects(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("create and fetch by slug", func(t *testing.T) {
		resp, err := env.Post("/admin/projects", map[string]interface{}{
			"title":   "Chat Server",
			"slug":    "chat-server",
			"summary": "A websocket chat server",
			"tags":    []string{"go", "websockets"},
		}, AdminToken)

		var created struct {
			ID   string   `json:"id"`
			Slug string   `json:"slug"`
			Tags []string `json:"tags"`
		}
		env.MustData(resp, err, &created)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, []string{"go", "websockets"}, created.Tags)

		var fetched struct {
			Title string `json:"title"`
		}
		resp, err = env.Get("/projects/chat-server", "")
		env.MustData(resp, err, &fetched)
		assert.Equal(t, "Chat Server", fetched.Title)
	})

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		resp, err := env.Post("/admin/projects", map[string]interface{}{
			"title": "Another",
			"slug":  "chat-server",
		}, AdminToken)
		require.NoError(t, err)
		assert.Equal(t, 409, resp.Status)
	})

	t.Run("cursor pagination walks all pages", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			resp, err := env.Post("/admin/projects", map[string]interface{}{
				"title": fmt.Sprintf("Project %d", i),
				"slug":  fmt.Sprintf("project-%d", i),
			}, AdminToken)
			env.MustData(resp, err, nil)
		}

		type page struct {
			Items []struct {
				Slug string `json:"slug"`
			} `json:"items"`
			Cursor  string `json:"cursor"`
			HasMore bool   `json:"has_more"`
		}

		seen := map[string]bool{}
		cursor := ""
		for pages := 0; pages < 10; pages++ {
			path := "/projects?limit=2"
			if cursor != "" {
				path += "&cursor=" + cursor
			}
			var p page
			resp, err := env.Get(path, "")
			env.MustData(resp, err, &p)
			for _, item := range p.Items {
				assert.False(t, seen[item.Slug], "slug %s seen twice", item.Slug)
				seen[item.Slug] = true
			}
			if !p.HasMore {
				break
			}
			cursor = p.Cursor
		}
		assert.Len(t, seen, 5)
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		resp, err := env.Get("/projects/never-built", "")
		require.NoError(t, err)
		assert.Equal(t, 404, resp.Status)
	})
}

func TestE2E_SkillsAndContact(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("skills CRUD", func(t *testing.T) {
		var skill struct {
			ID string `json:"id"`
		}
		resp, err := env.Post("/admin/skills", map[string]interface{}{
			"name":     "Go",
			"category": "Languages",
			"level":    "expert",
		}, AdminToken)
		env.MustData(resp, err, &skill)

		var list struct {
			Items []struct {
				Name string `json:"name"`
			} `json:"items"`
		}
		resp, err = env.Get("/skills", "")
		env.MustData(resp, err, &list)
		require.Len(t, list.Items, 1)
		assert.Equal(t, "Go", list.Items[0].Name)

		resp, err = env.Delete("/admin/skills/"+skill.ID, AdminToken)
		require.NoError(t, err)
		assert.Equal(t, 204, resp.Status)
	})

	t.Run("contact form flow", func(t *testing.T) {
		resp, err := env.Post("/contact", map[string]string{
			"name":  "Visitor",
			"email": "visitor@example.com",
			"body":  "I liked the chat server writeup.",
		}, "")
		var msg struct {
			ID   string `json:"id"`
			Read bool   `json:"read"`
		}
		env.MustData(resp, err, &msg)
		assert.False(t, msg.Read)

		resp, err = env.Post("/admin/messages/"+msg.ID+"/read", nil, AdminToken)
		require.NoError(t, err)
		assert.Equal(t, 204, resp.Status)

		var list struct {
			Items []struct {
				Read bool `json:"read"`
			} `json:"items"`
		}
		resp, err = env.Get("/admin/messages", AdminToken)
		env.MustData(resp, err, &list)
		require.Len(t, list.Items, 1)
		assert.True(t, list.Items[0].Read)

		resp, err = env.Delete("/admin/messages/"+msg.ID, AdminToken)
		require.NoError(t, err)
		assert.Equal(t, 204, resp.Status)
	})
}

func TestE2E_Settings(t *testing.T) {
	env := SetupE2EEnv(t)
	defer env.Cleanup()

	t.Run("defaults exist on first read", func(t *testing.T) {
		var settings struct {
			SiteTitle string `json:"site_title"`
		}
		resp, err := env.Get("/admin/settings", AdminToken)
		env.MustData(resp, err, &settings)
		assert.NotEmpty(t, settings.SiteTitle)
	})

	t.Run("update round-trips", func(t *testing.T) {
		resp, err := env.Put("/admin/settings", map[string]string{
			"site_title": "My Corner of the Internet",
			"owner_name": "Alex",
		}, AdminToken)
		env.MustData(resp, err, nil)

		var settings struct {
			SiteTitle string `json:"site_title"`
			OwnerName string `json:"owner_name"`
		}
		resp, err = env.Get("/admin/settings", AdminToken)
		env.MustData(resp, err, &settings)
		assert.Equal(t, "My Corner of the Internet", settings.SiteTitle)
		assert.Equal(t, "Alex", settings.OwnerName)
	})

	t.Run("missing title is rejected", func(t *testing.T) {
		resp, err := env.Put("/admin/settings", map[string]string{
			"site_title": "",
		}, AdminToken)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.Status)
	})
}

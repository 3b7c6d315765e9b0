package ssr

import (
	"encoding/json"
)

// PageQuery is one data dependency of a page.
type PageQuery struct {
	Key       string
	Query     string
	Variables map[string]any
}

// Page declares everything needed to render one route server-side: the
// queries to join on and the view built from their results.
type Page struct {
	Title    string
	Template string
	Queries  []PageQuery
	View     func(results map[string]json.RawMessage) (any, error)
}

type viewerView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type messageView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	User      struct {
		Username string `json:"username"`
	} `json:"user"`
	Username string `json:"-"`
}

const viewerQuery = `query Viewer { me { id username email role } }`

const feedQuery = `query Feed($limit: Int) {
  messages(limit: $limit) {
    edges { id text createdAt user { username } }
    pageInfo { hasNextPage endCursor }
  }
}`

func decodeViewer(results map[string]json.RawMessage) (*viewerView, error) {
	data, ok := results["viewer"]
	if !ok {
		return nil, nil
	}
	var out struct {
		Me *viewerView `json:"me"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out.Me, nil
}

// FeedPage is the landing page: the latest messages plus the viewer.
func FeedPage() Page {
	return Page{
		Title:    "Messages",
		Template: "feed",
		Queries: []PageQuery{
			{Key: "feed", Query: feedQuery, Variables: map[string]any{"limit": 25}},
			{Key: "viewer", Query: viewerQuery},
		},
		View: func(results map[string]json.RawMessage) (any, error) {
			var out struct {
				Messages struct {
					Edges    []messageView `json:"edges"`
					PageInfo struct {
						HasNextPage bool `json:"hasNextPage"`
					} `json:"pageInfo"`
				} `json:"messages"`
			}
			if err := json.Unmarshal(results["feed"], &out); err != nil {
				return nil, err
			}

			viewer, err := decodeViewer(results)
			if err != nil {
				return nil, err
			}

			messages := out.Messages.Edges
			for i := range messages {
				messages[i].Username = messages[i].User.Username
			}

			return struct {
				Viewer      *viewerView
				Messages    []messageView
				HasNextPage bool
			}{viewer, messages, out.Messages.PageInfo.HasNextPage}, nil
		},
	}
}

// AccountPage shows the viewer's profile, or the signed-out state.
func AccountPage() Page {
	return Page{
		Title:    "Account",
		Template: "account",
		Queries: []PageQuery{
			{Key: "viewer", Query: viewerQuery},
		},
		View: func(results map[string]json.RawMessage) (any, error) {
			viewer, err := decodeViewer(results)
			if err != nil {
				return nil, err
			}
			return struct {
				Viewer *viewerView
			}{viewer}, nil
		},
	}
}

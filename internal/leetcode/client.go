package leetcode

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"streakd/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

// dailyQuery selects everything the tracker needs in one request: sign-in
// status, display metadata, the streak counter and today's challenge.
const dailyQuery = `query streakDaily {
  userStatus { isSignedIn username avatar }
  streakCounter { streakCount currentDayCompleted }
  activeDailyCodingChallengeQuestion {
    link
    question { frontendQuestionId: questionFrontendId title titleSlug difficulty }
  }
}`

// DailyStatus is the flattened query result. Every field is optional on the
// wire; absent data decodes to zero values rather than errors.
type DailyStatus struct {
	SignedIn          bool
	Username          string
	Avatar            string
	Streak            int
	CompletedToday    bool
	ChallengeLink     string
	ChallengeTitle    string
	ChallengeSlug     string
	ChallengeDiff     string
	ChallengeFrontend string
}

type ClientInterface interface {
	FetchDailyStatus(ctx context.Context) (*DailyStatus, error)
}

type Client struct {
	endpoint string
	session  string
	csrf     string
	http     *http.Client
}

func NewClient(conf *structures.Config) ClientInterface {
	return &Client{
		endpoint: conf.LeetCode.Endpoint,
		session:  conf.LeetCode.Session,
		csrf:     conf.LeetCode.CSRFToken,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type graphqlRequest struct {
	Query string `json:"query"`
}

type graphqlResponse struct {
	Data *struct {
		UserStatus *struct {
			IsSignedIn bool   `json:"isSignedIn"`
			Username   string `json:"username"`
			Avatar     string `json:"avatar"`
		} `json:"userStatus"`
		StreakCounter *struct {
			StreakCount         int  `json:"streakCount"`
			CurrentDayCompleted bool `json:"currentDayCompleted"`
		} `json:"streakCounter"`
		ActiveDaily *struct {
			Link     string `json:"link"`
			Question *struct {
				FrontendID string `json:"frontendQuestionId"`
				Title      string `json:"title"`
				TitleSlug  string `json:"titleSlug"`
				Difficulty string `json:"difficulty"`
			} `json:"question"`
		} `json:"activeDailyCodingChallengeQuestion"`
	} `json:"data"`
}

func (c *Client) FetchDailyStatus(ctx context.Context) (*DailyStatus, error) {
	body, err := json.Marshal(graphqlRequest{Query: dailyQuery})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "LEETCODE_SESSION", Value: c.session})
	}
	if c.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: c.csrf})
		req.Header.Set("X-Csrftoken", c.csrf)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graphql endpoint returned %d", resp.StatusCode)
	}

	var decoded graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	status := &DailyStatus{}
	if decoded.Data == nil {
		return status, nil
	}
	if us := decoded.Data.UserStatus; us != nil {
		status.SignedIn = us.IsSignedIn
		status.Username = us.Username
		status.Avatar = us.Avatar
	}
	if sc := decoded.Data.StreakCounter; sc != nil {
		status.Streak = sc.StreakCount
		status.CompletedToday = sc.CurrentDayCompleted
	}
	if ad := decoded.Data.ActiveDaily; ad != nil {
		status.ChallengeLink = ad.Link
		if q := ad.Question; q != nil {
			status.ChallengeTitle = q.Title
			status.ChallengeSlug = q.TitleSlug
			status.ChallengeDiff = q.Difficulty
			status.ChallengeFrontend = q.FrontendID
		}
	}
	return status, nil
}

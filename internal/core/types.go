package core

import "time"

const (
	MuseName          = "Muse"
	MuseUserAgent     = "MuseBot-Agent/0.1"
	MuseVersion       = "0.1.0"
	MuseRepositoryURL = "https://github.com/sandevgo/musebot"
)

const (
	// DefaultChatTitle is assigned to every new chat until the first
	// exchange triggers title auto-generation.
	DefaultChatTitle = "New Chat"

	// CentralMemoryLimit caps the per-session central memory ring buffer.
	CentralMemoryLimit = 100

	// CentralExcerptSize is how many central entries make it into a prompt.
	CentralExcerptSize = 5

	// LiveResultLimit caps results fetched from any live-data provider.
	LiveResultLimit = 3
)

// Exchange is one completed turn: the user prompt and the assistant
// response, recorded together as an immutable unit. A failed model
// invocation produces no Exchange.
type Exchange struct {
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// Chat is a titled conversation thread owned by exactly one session.
type Chat struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatSummary is the listing view of a chat.
type ChatSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	ExchangeCount int       `json:"exchange_count"`
}

// TurnFlags select which context sources a single turn pulls in and
// which memory stores the finished exchange is written back to.
type TurnFlags struct {
	UseCurrentMemory bool
	UseCentralMemory bool
	UseURLContext    bool
}

// NewsItem is one headline from the news provider.
type NewsItem struct {
	Title  string
	Source string
	URL    string
}

// SearchResult is one organic result from the web-search provider.
type SearchResult struct {
	Title   string
	Link    string
	Snippet string
}

// ForecastDay is one day of the weather forecast.
type ForecastDay struct {
	Date    string
	Summary string
	MinC    float64
	MaxC    float64
}

// WeatherReport combines current conditions with a short forecast.
type WeatherReport struct {
	City        string
	Description string
	TempC       float64
	Forecast    []ForecastDay
}

package gateway

// Vibe moods offered by the styling flows.
const (
	VibeSophisticated = "Sophisticated"
	VibeCoquetteCute  = "Coquette Cute"
	VibeEdgyStreet    = "Edgy/Street"
	VibeComfyChic     = "Comfy Chic"
)

// Greeting opens every new chat thread.
const Greeting = "Hello darling! Are we discussing pearls, vintage Chanel, or perhaps a dreamy new investment piece today?"

// AutoTag holds the fields the model extracts from a garment photo.
type AutoTag struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Season         string  `json:"season"`
	Color          string  `json:"color"`
	EstimatedPrice float64 `json:"estimatedPrice"`
}

// HybridItem is an outfit piece that is either an owned closet item
// (referenced by id) or a generic stylist pick.
type HybridItem struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	IsOwned           bool   `json:"is_owned"`
	VisualDescription string `json:"visual_description,omitempty"`
}

// Outfit is one generated look.
type Outfit struct {
	CreativeTitle      string       `json:"creative_title"`
	VibePlaylist       string       `json:"vibe_playlist"`
	Items              []HybridItem `json:"items"`
	StylingTip         string       `json:"styling_tip"`
	ManicureSuggestion string       `json:"manicure_suggestion"`
}

// ClosetAnalysis is the result of the style-my-closet flow.
type ClosetAnalysis struct {
	Outfits []Outfit `json:"outfits"`
}

// StyleRequest carries the user context for closet analysis.
type StyleRequest struct {
	Context string
	Height  string
	Vibe    string
}

// StyleRecommendation is one body-fit suggestion.
type StyleRecommendation struct {
	Category         string `json:"category"`
	StyleName        string `json:"style_name"`
	Reasoning        string `json:"reasoning"`
	VisualSearchTerm string `json:"visual_search_term"`
}

// BodyFitAnalysis is the result of the body-type flow.
type BodyFitAnalysis struct {
	BodyShape       string                `json:"body_shape"`
	Analysis        string                `json:"analysis"`
	Recommendations []StyleRecommendation `json:"recommendations"`
}

// LuxuryRecommendation is one product suggestion from the chat consultant.
type LuxuryRecommendation struct {
	Name              string `json:"name"`
	Brand             string `json:"brand"`
	PriceEstimate     string `json:"price_estimate"`
	VisualDescription string `json:"visual_description"`
}

// Message roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one chat transcript entry.
type Message struct {
	Role            string                 `json:"role"`
	Text            string                 `json:"text"`
	Recommendations []LuxuryRecommendation `json:"recommendations,omitempty"`
}

// ChatOptions carries the user context for the luxury chat.
type ChatOptions struct {
	BudgetLevel int
	Age         string
	Size        string
}

// ChatReply is one consultant turn.
type ChatReply struct {
	Text            string                 `json:"text"`
	Recommendations []LuxuryRecommendation `json:"recommendations,omitempty"`
}

// DayOutfit is one itinerary day in a packing list.
type DayOutfit struct {
	Day           int          `json:"day"`
	Activity      string       `json:"activity"`
	CreativeTitle string       `json:"creative_title"`
	VibePlaylist  string       `json:"vibe_playlist"`
	Items         []HybridItem `json:"items"`
	StylingNote   string       `json:"styling_note"`
}

// PackingList is the result of both travel flows.
type PackingList struct {
	DestinationVibe      string      `json:"destination_vibe"`
	WeatherForecastGuess string      `json:"weather_forecast_guess"`
	WeatherReasoning     string      `json:"weather_reasoning"`
	OutfitsPerDay        []DayOutfit `json:"outfits_per_day"`
}

// PackPiece is a wardrobe item offered to the travel stylist: either a
// closet item (image plus metadata) or a bare upload.
type PackPiece struct {
	Image    string
	Name     string
	Category string
}

// TravelRequest carries the trip parameters for both travel flows.
type TravelRequest struct {
	Destination string
	Days        int
	TripType    string
	Vibe        string
	Items       []PackPiece
}

// OutfitRating is the dressing-room verdict for a picked outfit.
type OutfitRating struct {
	Score                 int    `json:"score"`
	Comment               string `json:"comment"`
	IsComplete            bool   `json:"is_complete"`
	MissingItemSuggestion string `json:"missing_item_suggestion,omitempty"`
}

// Package gateway adapts the styling flows to the Gemini API. Each call
// bundles inline images and a prompt, constrains the reply to JSON with a
// response schema, and strictly decodes the result. Calls may take seconds
// and may fail; failures come back as errors for the caller to surface, never
// as panics.
package gateway

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/noircloset/noir/internal/imaging"
)

// Model names per call type. Auto-tagging runs on the cheaper flash model.
const (
	tagModel     = "gemini-2.5-flash"
	stylistModel = "gemini-3-pro-preview"
)

// MaxTripDays caps itineraries to keep responses bounded.
const MaxTripDays = 5

// Client is the Gemini-backed stylist.
type Client struct {
	client *genai.Client
}

// NewClient creates a gateway client for the Gemini API.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{client: client}, nil
}

// AutoTag extracts name, category, season, color and a resale price estimate
// from a garment photo.
func (c *Client) AutoTag(ctx context.Context, image string) (*AutoTag, error) {
	part, err := imagePart(image)
	if err != nil {
		return nil, err
	}

	prompt := `Analyze this fashion item image.

Tasks:
1. Identify the Item Name (be specific, e.g., "Floral Silk Midi Skirt").
2. Categorize it strictly into one of: 'Top', 'Bottom', 'Dress', 'Outerwear', 'Shoes', 'Bag', 'Accessory'.
3. Identify the best Season: 'Spring', 'Summer', 'Autumn', 'Winter', 'Year-Round'.
4. Identify the primary Color.
5. Estimate a resale price (number only) in USD.

CRITICAL: Return strict JSON.`

	data, err := c.generate(ctx, tagModel, userTurn(part, textPart(prompt)), "", autoTagSchema())
	if err != nil {
		return nil, err
	}
	return decodeAutoTag(data)
}

// AnalyzeCloset generates three outfits from the provided item images, mixing
// owned pieces with generic stylist picks.
func (c *Client) AnalyzeCloset(ctx context.Context, images []string, req StyleRequest) (*ClosetAnalysis, error) {
	parts, err := imageParts(images)
	if err != nil {
		return nil, err
	}

	indices := make([]string, len(images))
	for i := range images {
		indices[i] = fmt.Sprintf("Image Index %d", i)
	}

	prompt := fmt.Sprintf(`I have provided %d images of items from my closet.
Ordering: %s.

User Context: Height %q, Request %q, Vibe %q.

Tasks:
1. Create exactly 3 distinct full outfits (Flat Lay style).
2. Use provided items if they fit the vibe.
3. Suggest "Generic Stylist Pick" (is_owned: false) if missing a key piece.
4. Give "creative_title", "vibe_playlist", styling tip, manicure suggestion.

CRITICAL: Be extremely concise. Return strict JSON.`,
		len(images), strings.Join(indices, ", "), req.Height, req.Context, req.Vibe)

	data, err := c.generate(ctx, stylistModel, userTurn(append(parts, textPart(prompt))...),
		"You are a high-fashion personal stylist. Create outfits.", closetAnalysisSchema())
	if err != nil {
		return nil, err
	}
	return decodeClosetAnalysis(data)
}

// AnalyzeBodyFit analyzes a silhouette from an optional photo and a
// description, returning flattering style recommendations.
func (c *Client) AnalyzeBodyFit(ctx context.Context, image, description string) (*BodyFitAnalysis, error) {
	var parts []*genai.Part
	if image != "" {
		part, err := imagePart(image)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	prompt := fmt.Sprintf(`User Description: %q
Task: Analyze the silhouette and fit requirements.
Provide 3 specific fashion recommendations (e.g. specific cuts, styles) that would be flattering.
Output format: JSON.`, description)
	parts = append(parts, textPart(prompt))

	data, err := c.generate(ctx, stylistModel, userTurn(parts...),
		"You are an expert fashion tailor and stylist. Analyze silhouettes and offer confidence-boosting advice. Be concise.",
		bodyFitSchema())
	if err != nil {
		return nil, err
	}
	return decodeBodyFit(data)
}

// Chat continues the luxury-investment conversation with one more user turn.
func (c *Client) Chat(ctx context.Context, history []Message, message string, opts ChatOptions) (*ChatReply, error) {
	budgets := []string{"Accessible (Under $500)", "Investment (Under $2000)", "Dream/Couture ($2000+)"}
	budget := "No Budget Limit"
	if opts.BudgetLevel >= 0 && opts.BudgetLevel < len(budgets) {
		budget = budgets[opts.BudgetLevel]
	}

	system := fmt.Sprintf(`You are a luxury fashion investment consultant with a "Coquette" aesthetic.
User: Age %s, Size %s, Budget %s.
Provide warm, feminine advice and specific product recommendations.
CRITICAL: Be extremely concise. Return JSON data immediately.`, opts.Age, opts.Size, budget)

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		role := RoleModel
		if msg.Role == RoleUser {
			role = RoleUser
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []*genai.Part{textPart(msg.Text)}})
	}
	contents = append(contents, &genai.Content{Role: RoleUser, Parts: []*genai.Part{textPart(message)}})

	data, err := c.generateContents(ctx, stylistModel, contents, system, chatSchema())
	if err != nil {
		return nil, err
	}
	return decodeChatReply(data)
}

// PackingList builds a day-by-day travel wardrobe from the provided pieces.
func (c *Client) PackingList(ctx context.Context, req TravelRequest) (*PackingList, error) {
	days, effectiveDays := clampDays(req.Days)

	parts := make([]*genai.Part, 0, len(req.Items)+1)
	wardrobe := make([]string, len(req.Items))
	for i, piece := range req.Items {
		part, err := imagePart(piece.Image)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
		if piece.Name != "" {
			wardrobe[i] = fmt.Sprintf("Index %d: %s (%s)", i, piece.Name, piece.Category)
		} else {
			wardrobe[i] = fmt.Sprintf("Index %d: Uploaded Item", i)
		}
	}

	prompt := fmt.Sprintf(`Destination: %s, Trip: %d days, Type: %s, Vibe: %q

Wardrobe (refer by Index):
%s

Tasks:
1. Predict weather.
2. Create Day-by-Day itinerary for **%d days max**.
3. Use provided images (indices). Suggest generic if needed.

CRITICAL: Return strict JSON. Be concise.`,
		req.Destination, days, req.TripType, req.Vibe, strings.Join(wardrobe, "\n"), effectiveDays)
	parts = append(parts, textPart(prompt))

	data, err := c.generate(ctx, stylistModel, userTurn(parts...),
		"You are a travel stylist. Create concise packing lists.", packingListSchema())
	if err != nil {
		return nil, err
	}
	return decodePackingList(data)
}

// TripInspiration builds a mood-board packing list from invented pieces,
// ignoring the user's wardrobe entirely.
func (c *Client) TripInspiration(ctx context.Context, req TravelRequest) (*PackingList, error) {
	days, effectiveDays := clampDays(req.Days)

	prompt := fmt.Sprintf(`Generate an "Inspiration Packing List" (Mood Board) for a %d-day trip to %s.
Trip Type: %s, Vibe: %q.

Constraints:
1. Ignore user wardrobe. Invent specific fashion items (e.g. "Vintage Chanel Bag", "Silk Scarf").
2. Set 'is_owned' to FALSE for all items.
3. Create a Day-by-Day itinerary for %d representative days only.
4. Keep item names short (max 5 words).
5. Return strictly valid JSON.`,
		days, req.Destination, req.TripType, req.Vibe, effectiveDays)

	data, err := c.generate(ctx, stylistModel, userTurn(textPart(prompt)),
		"You are a concise travel fashion editor. Return valid JSON only. Do not repeat text.", packingListSchema())
	if err != nil {
		return nil, err
	}
	return decodePackingList(data)
}

// RateOutfit scores a picked outfit from its item images.
func (c *Client) RateOutfit(ctx context.Context, images []string) (*OutfitRating, error) {
	parts, err := imageParts(images)
	if err != nil {
		return nil, err
	}

	prompt := `Rate this outfit (images provided).

Tasks:
1. Score 1-10.
2. Cute "Coquette" comment.
3. Is it complete?
4. Suggest missing item.

CRITICAL: Return strict JSON.`
	parts = append(parts, textPart(prompt))

	data, err := c.generate(ctx, stylistModel, userTurn(parts...),
		"You are a stylist. Rate outfits.", outfitRatingSchema())
	if err != nil {
		return nil, err
	}
	return decodeOutfitRating(data)
}

func (c *Client) generate(ctx context.Context, model string, content *genai.Content, system string, schema *genai.Schema) ([]byte, error) {
	return c.generateContents(ctx, model, []*genai.Content{content}, system, schema)
}

func (c *Client) generateContents(ctx context.Context, model string, contents []*genai.Content, system string, schema *genai.Schema) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{textPart(system)}}
	}

	result, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gateway: calling model: %w", err)
	}
	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrBadResponse)
	}
	return []byte(text), nil
}

func clampDays(days int) (requested, effective int) {
	if days <= 0 {
		days = 3
	}
	return days, min(days, MaxTripDays)
}

func userTurn(parts ...*genai.Part) *genai.Content {
	return &genai.Content{Role: RoleUser, Parts: parts}
}

func textPart(text string) *genai.Part {
	return &genai.Part{Text: text}
}

// imagePart converts a stored data URL into an inline image blob.
func imagePart(dataURL string) (*genai.Part, error) {
	data, mime, err := imaging.DecodeDataURL(dataURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: invalid image data: %w", err)
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: data}}, nil
}

func imageParts(dataURLs []string) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(dataURLs))
	for _, url := range dataURLs {
		part, err := imagePart(url)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

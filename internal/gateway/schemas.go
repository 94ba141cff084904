package gateway

import "google.golang.org/genai"

// Response schemas passed to the model so replies come back as constrained
// JSON. Constraining the shape does not make the content trustworthy; every
// reply still goes through the strict decoders.

func autoTagSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":           {Type: genai.TypeString},
			"category":       {Type: genai.TypeString},
			"season":         {Type: genai.TypeString},
			"color":          {Type: genai.TypeString},
			"estimatedPrice": {Type: genai.TypeNumber},
		},
	}
}

func hybridItemSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":                 {Type: genai.TypeString, Description: "Closet item id. Empty if generic."},
			"name":               {Type: genai.TypeString},
			"category":           {Type: genai.TypeString},
			"is_owned":           {Type: genai.TypeBoolean},
			"visual_description": {Type: genai.TypeString},
		},
	}
}

func closetAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"outfits": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"creative_title":      {Type: genai.TypeString},
						"vibe_playlist":       {Type: genai.TypeString},
						"items":               {Type: genai.TypeArray, Items: hybridItemSchema()},
						"styling_tip":         {Type: genai.TypeString},
						"manicure_suggestion": {Type: genai.TypeString},
					},
				},
			},
		},
	}
}

func bodyFitSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"body_shape": {Type: genai.TypeString},
			"analysis":   {Type: genai.TypeString},
			"recommendations": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"category":           {Type: genai.TypeString},
						"style_name":         {Type: genai.TypeString},
						"reasoning":          {Type: genai.TypeString},
						"visual_search_term": {Type: genai.TypeString},
					},
				},
			},
		},
	}
}

func chatSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"response_text": {Type: genai.TypeString},
			"recommendations": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":               {Type: genai.TypeString},
						"brand":              {Type: genai.TypeString},
						"price_estimate":     {Type: genai.TypeString},
						"visual_description": {Type: genai.TypeString},
					},
				},
			},
		},
	}
}

func packingListSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"destination_vibe":       {Type: genai.TypeString},
			"weather_forecast_guess": {Type: genai.TypeString},
			"weather_reasoning":      {Type: genai.TypeString},
			"outfits_per_day": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day":            {Type: genai.TypeInteger},
						"activity":       {Type: genai.TypeString},
						"creative_title": {Type: genai.TypeString},
						"vibe_playlist":  {Type: genai.TypeString},
						"items":          {Type: genai.TypeArray, Items: hybridItemSchema()},
						"styling_note":   {Type: genai.TypeString},
					},
				},
			},
		},
	}
}

func outfitRatingSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":                   {Type: genai.TypeInteger},
			"comment":                 {Type: genai.TypeString},
			"is_complete":             {Type: genai.TypeBoolean},
			"missing_item_suggestion": {Type: genai.TypeString},
		},
	}
}

package gemini

import "google.golang.org/genai"

// Response schemas mirroring the structured-call contracts.

func propertyDataSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"address":          {Type: genai.TypeString, Description: "Full street address (straat + huisnummer)"},
			"postal_code":      {Type: genai.TypeString, Description: "Dutch postal code (e.g., 1234 AB)"},
			"city":             {Type: genai.TypeString, Description: "City/municipality name"},
			"square_meters":    {Type: genai.TypeNumber, Description: "Living area in square meters (woonoppervlakte)"},
			"year_built":       {Type: genai.TypeInteger, Description: "Year the building was constructed (bouwjaar)"},
			"energy_label":     {Type: genai.TypeString, Description: "Energy label (A++++ to G)"},
			"property_type":    {Type: genai.TypeString, Description: "Type: appartement, tussenwoning, hoekwoning, vrijstaand, etc."},
			"asking_price":     {Type: genai.TypeNumber, Description: "Asking price in euros (vraagprijs)"},
			"hoa_monthly_cost": {Type: genai.TypeNumber, Description: "Monthly HOA fee (VvE bijdrage) in euros"},
			"num_rooms":        {Type: genai.TypeInteger, Description: "Number of rooms (kamers)"},
			"has_garden":       {Type: genai.TypeBoolean, Description: "Whether property has a garden (tuin)"},
			"has_parking":      {Type: genai.TypeBoolean, Description: "Whether property has parking (parkeerplaats/garage)"},
			"conditions": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "Special conditions or clauses (ontbindende voorwaarden, bijzondere bepalingen)",
			},
			"transfer_date": {Type: genai.TypeString, Description: "Planned transfer date (leveringsdatum)"},
		},
	}
}

func risksSchema() *genai.Schema {
	riskSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category":    {Type: genai.TypeString, Enum: []string{"structural", "legal", "financial", "market"}, Description: "Risk category"},
			"severity":    {Type: genai.TypeString, Enum: []string{"low", "medium", "high", "critical"}, Description: "Severity level"},
			"title":       {Type: genai.TypeString, Description: "Short risk title"},
			"description": {Type: genai.TypeString, Description: "Detailed explanation of the risk and its potential impact"},
		},
		Required: []string{"category", "severity", "title", "description"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"risks": {Type: genai.TypeArray, Items: riskSchema},
		},
		Required: []string{"risks"},
	}
}

func strengthsWeaknessesSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"strengths": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of property strengths and positive aspects",
			},
			"weaknesses": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of property weaknesses and concerns",
			},
		},
		Required: []string{"strengths", "weaknesses"},
	}
}

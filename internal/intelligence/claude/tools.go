package claude

// Tool schemas for the structured extraction calls. Forcing tool_choice onto
// these schemas keeps the model output machine-readable.

var extractPropertyDataTool = tool{
	Name:        "extract_property_data",
	Description: "Extract structured property data from a Dutch real estate document",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"address":          map[string]interface{}{"type": "string", "description": "Full street address (straat + huisnummer)"},
			"postal_code":      map[string]interface{}{"type": "string", "description": "Dutch postal code (e.g., 1234 AB)"},
			"city":             map[string]interface{}{"type": "string", "description": "City/municipality name"},
			"square_meters":    map[string]interface{}{"type": "number", "description": "Living area in square meters (woonoppervlakte)"},
			"year_built":       map[string]interface{}{"type": "integer", "description": "Year the building was constructed (bouwjaar)"},
			"energy_label":     map[string]interface{}{"type": "string", "description": "Energy label (A++++ to G)"},
			"property_type":    map[string]interface{}{"type": "string", "description": "Type: appartement, tussenwoning, hoekwoning, vrijstaand, twee-onder-een-kap, etc."},
			"asking_price":     map[string]interface{}{"type": "number", "description": "Asking price in euros (vraagprijs)"},
			"hoa_monthly_cost": map[string]interface{}{"type": "number", "description": "Monthly HOA fee (VvE bijdrage) in euros"},
			"num_rooms":        map[string]interface{}{"type": "integer", "description": "Number of rooms (kamers)"},
			"has_garden":       map[string]interface{}{"type": "boolean", "description": "Whether property has a garden (tuin)"},
			"has_parking":      map[string]interface{}{"type": "boolean", "description": "Whether property has parking (parkeerplaats/garage)"},
			"conditions": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Special conditions or clauses (ontbindende voorwaarden, bijzondere bepalingen)",
			},
			"transfer_date":    map[string]interface{}{"type": "string", "description": "Planned transfer date (leveringsdatum)"},
			"confidence_notes": map[string]interface{}{"type": "object", "description": "For each field, note 'confirmed', 'inferred', or 'unknown'"},
		},
		"required": []string{"confidence_notes"},
	},
}

var detectRisksTool = tool{
	Name:        "detect_risks",
	Description: "Detect risks and issues in a Dutch real estate document",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"risks": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"category": map[string]interface{}{
							"type":        "string",
							"enum":        []string{"structural", "legal", "financial", "market"},
							"description": "Risk category",
						},
						"severity": map[string]interface{}{
							"type":        "string",
							"enum":        []string{"low", "medium", "high", "critical"},
							"description": "Severity level",
						},
						"title":       map[string]interface{}{"type": "string", "description": "Short risk title"},
						"description": map[string]interface{}{"type": "string", "description": "Detailed explanation of the risk and its potential impact"},
					},
					"required": []string{"category", "severity", "title", "description"},
				},
			},
		},
		"required": []string{"risks"},
	},
}

var strengthsWeaknessesTool = tool{
	Name:        "identify_strengths_weaknesses",
	Description: "Identify property strengths and weaknesses for a Dutch home buyer",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"strengths": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "List of property strengths and positive aspects",
			},
			"weaknesses": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "List of property weaknesses and concerns",
			},
		},
		"required": []string{"strengths", "weaknesses"},
	},
}

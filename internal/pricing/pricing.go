package pricing

// CostInput represents the full set of user-editable parameters for one
// print job estimate.
type CostInput struct {
	PrintName    string `json:"printName"`
	CustomerName string `json:"customerName"`
	PurchaseDate string `json:"purchaseDate"`
	Currency     string `json:"currency"`

	FilamentDiameter float64 `json:"filamentDiameter"` // mm
	FilamentWeight   float64 `json:"filamentWeight"`   // grams
	FilamentPrice    float64 `json:"filamentPrice"`    // per kg

	IncludeElectricity bool    `json:"includeElectricity"`
	PrintTimeHours     int     `json:"printTimeHours"`
	PrintTimeMinutes   int     `json:"printTimeMinutes"`
	PrintTimeSeconds   int     `json:"printTimeSeconds"`
	ElectricityCost    float64 `json:"electricityCost"` // per kWh

	IncludeLabor     bool    `json:"includeLabor"`
	LaborTimeHours   int     `json:"laborTimeHours"`
	LaborTimeMinutes int     `json:"laborTimeMinutes"`
	LaborRate        float64 `json:"laborRate"` // per hour

	IncludePostProcessing bool    `json:"includePostProcessing"`
	PostProcessingHours   int     `json:"postProcessingHours"`
	PostProcessingMinutes int     `json:"postProcessingMinutes"`
	PostProcessingRate    float64 `json:"postProcessingRate"` // per hour

	Markup float64 `json:"markup"` // percent
}

// Breakdown contains all line-item and roll-up values of a cost
// calculation. It is derived state: recomputed from CostInput on every
// change, never stored with its own identity.
type Breakdown struct {
	MaterialCost       float64 `json:"materialCost"`
	ElectricityCost    float64 `json:"electricityCost"`
	LaborCost          float64 `json:"laborCost"`
	PostProcessingCost float64 `json:"postProcessingCost"`
	TotalCost          float64 `json:"totalCost"`
	MarkupPrice        float64 `json:"markupPrice"`
	FinalPrice         float64 `json:"finalPrice"`
}

// Calculate computes the cost breakdown for the given inputs. No rounding
// is performed here; the display layer formats to two decimals.
func Calculate(in CostInput) Breakdown {
	materialCost := (in.FilamentWeight / 1000.0) * in.FilamentPrice

	electricityCost := 0.0
	if in.IncludeElectricity {
		printHours := float64(in.PrintTimeHours) + float64(in.PrintTimeMinutes)/60.0 + float64(in.PrintTimeSeconds)/3600.0
		electricityCost = printHours * in.ElectricityCost
	}

	laborCost := 0.0
	if in.IncludeLabor {
		laborHours := float64(in.LaborTimeHours) + float64(in.LaborTimeMinutes)/60.0
		laborCost = laborHours * in.LaborRate
	}

	postProcessingCost := 0.0
	if in.IncludePostProcessing {
		postHours := float64(in.PostProcessingHours) + float64(in.PostProcessingMinutes)/60.0
		postProcessingCost = postHours * in.PostProcessingRate
	}

	totalCost := materialCost + electricityCost + laborCost + postProcessingCost
	markupPrice := totalCost * (in.Markup / 100.0)

	return Breakdown{
		MaterialCost:       materialCost,
		ElectricityCost:    electricityCost,
		LaborCost:          laborCost,
		PostProcessingCost: postProcessingCost,
		TotalCost:          totalCost,
		MarkupPrice:        markupPrice,
		FinalPrice:         totalCost + markupPrice,
	}
}

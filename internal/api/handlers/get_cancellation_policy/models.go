package get_cancellation_policy

import "github.com/m04kA/SMC-HeliTourService/internal/domain"

// PolicyTierResponse уровень политики отмены
type PolicyTierResponse struct {
	DaysBefore    int `json:"daysBefore"`
	FeePercentage int `json:"feePercentage"`
	DisplayOrder  int `json:"displayOrder"`
}

// PolicyResponse HTTP response model
type PolicyResponse struct {
	Tiers []PolicyTierResponse `json:"tiers"`
}

// FromTiers конвертирует уровни политики в HTTP response
func FromTiers(tiers []domain.CancellationPolicyTier) *PolicyResponse {
	resp := &PolicyResponse{Tiers: make([]PolicyTierResponse, 0, len(tiers))}
	for _, t := range tiers {
		resp.Tiers = append(resp.Tiers, PolicyTierResponse{
			DaysBefore:    t.DaysBefore,
			FeePercentage: t.FeePercentage,
			DisplayOrder:  t.DisplayOrder,
		})
	}
	return resp
}

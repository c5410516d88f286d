package permissions

import "jumbofurnace.ai/internal/sim/world/feature/governance/claims"

type Permissions struct {
	CanBuild bool
}

// Wild applies outside any claim.
func Wild() Permissions {
	return Permissions{CanBuild: true}
}

// ForLand resolves permissions on claimed land. Members always build; land whose
// maintenance has lapsed (stage 2) falls back to wild rules.
func ForLand(isMember bool, maintenanceStage int, flags claims.Flags) Permissions {
	switch {
	case isMember:
		return Permissions{CanBuild: true}
	case maintenanceStage >= 2:
		return Wild()
	}
	return Permissions{CanBuild: flags.AllowBuild}
}

// ForClaim resolves what actor may do on land covered by c. A nil claim is wild land.
func ForClaim(c *claims.Claim, actor string) Permissions {
	if c == nil {
		return Wild()
	}
	return ForLand(c.IsMember(actor), c.MaintenanceStage, c.Flags)
}

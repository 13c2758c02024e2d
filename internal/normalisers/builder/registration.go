package builder

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/bodacc/internal/core/domain"
	"github.com/custodia-labs/bodacc/internal/logger"
	"github.com/custodia-labs/bodacc/internal/normalisers/schema"
	"github.com/custodia-labs/bodacc/internal/normalisers/value"
)

// JurisdictionCode is set on every registered identifier.
const JurisdictionCode = "fr"

// Registration builds a registration identifier. The registered branch
// wins when both markers are present. When neither is present the result
// is nil, or a contract violation if required is set.
func (b *Builder) Registration(r schema.Registered, required bool) (*domain.Registration, error) {
	switch {
	case r.NumeroImmatriculation != nil:
		if r.NonInscrit != nil {
			logger.Warn("registration: expected one of numeroImmatriculation or nonInscrit, got both")
		}
		n := r.NumeroImmatriculation
		number := value.StripSpace(n.Number())
		if number == "" {
			return nil, fmt.Errorf("%w: numeroImmatriculation without numeroIdentification", domain.ErrInvalidInput)
		}
		reg := &domain.Registration{
			JurisdictionCode: JurisdictionCode,
			Number:           number,
			Registry:         strings.TrimSpace(n.CodeRCS),
			Clerk:            strings.TrimSpace(n.NomGreffeImmat),
		}
		b.checkRegistry(reg.Registry)
		return reg, nil
	case r.NonInscrit != nil:
		return &domain.Registration{NotRegistered: true}, nil
	case required:
		return nil, fmt.Errorf("%w: expected one of numeroImmatriculation or nonInscrit, got none", domain.ErrContractViolation)
	default:
		return nil, nil
	}
}

// checkRegistry is best effort: unknown codes are reported and kept.
func (b *Builder) checkRegistry(code string) {
	if code == "" {
		return
	}
	if !b.values.Vocabulary().IsRegistryCode(code) {
		logger.Warn("registration: unrecognised registry code %q", code)
	}
}

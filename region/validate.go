package region

import "github.com/cockroachdb/errors"

// Validate checks the ring invariants a Region must satisfy between public
// operations: ring closure, ring partition by triviality, a single iso
// terminating the primary ring, and secondary-ring emptiness agreement. It
// implements regionutil.Validatable so callers can route it through
// regionutil.DebugValidate the same way any other debug-checked structure
// in this module does.
func (r *Region) Validate() error {
	primaryTrivial := r.iso.IsTrivial()

	seenISO := false
	node := r.meta.next
	steps := 0
	for node != r.meta {
		if steps > maxValidateSteps {
			return errors.New("region.Validate: primary ring does not close")
		}
		if node.tag == tagISO {
			seenISO = true
			if node.next != r.meta {
				return errors.New("region.Validate: iso is not the last primary-ring node")
			}
			if node != r.iso {
				return errors.New("region.Validate: iso tag present on a node other than r.iso")
			}
			if node.ownerRegion != r {
				return errors.New("region.Validate: iso's owner region does not match r")
			}
		} else if node.IsTrivial() != primaryTrivial {
			return errors.New("region.Validate: primary ring contains a member of the wrong triviality")
		}
		node = node.next
		steps++
	}
	if !seenISO {
		return errors.New("region.Validate: primary ring has no iso terminator")
	}

	node = r.nextNotRoot
	steps = 0
	for node != r.meta {
		if steps > maxValidateSteps {
			return errors.New("region.Validate: secondary ring does not close")
		}
		if node.tag == tagISO {
			return errors.New("region.Validate: secondary ring contains the iso")
		}
		if node.IsTrivial() == primaryTrivial {
			return errors.New("region.Validate: secondary ring contains a member of the primary's triviality")
		}
		node = node.next
		steps++
	}

	emptySecondary := r.nextNotRoot == r.meta
	emptyTail := r.lastNotRoot == r.meta
	if emptySecondary != emptyTail {
		return errors.New("region.Validate: secondary emptiness disagreement between head and tail")
	}

	return nil
}

// maxValidateSteps bounds ring walks during validation so a broken ring
// (one that never cycles back to the metadata) reports an error instead of
// looping forever.
const maxValidateSteps = 1 << 20

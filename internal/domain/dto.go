package domain

type TransactionKind string

const (
	TransactionKindTransfer   TransactionKind = "transfer"
	TransactionKindVipUpgrade TransactionKind = "vip_upgrade"
)

type MembershipLevel string

const (
	MembershipVip     MembershipLevel = "VIP"
	MembershipRegular MembershipLevel = "regular"
)

// MembershipOf возвращает уровень членства по VIP флагу.
func MembershipOf(isVip bool) MembershipLevel {
	if isVip {
		return MembershipVip
	}
	return MembershipRegular
}

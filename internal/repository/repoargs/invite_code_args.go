package repoargs

type InviteCodeCreate struct {
	Code      string
	CreatedBy *int64
}

package repoargs

type RepositoryName string

const (
	UserRepoName        RepositoryName = "user"
	TransactionRepoName RepositoryName = "transaction"
	InviteCodeRepoName  RepositoryName = "invite_code"
)

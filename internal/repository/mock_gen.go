// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./invitation.go -destination=../mocks/mock_invitation.go -package=mocks InvitationRepositoryIface
//go:generate mockgen -source=./agent.go -destination=../mocks/mock_agent.go -package=mocks AgentRepositoryIface
//go:generate mockgen -source=./conversation.go -destination=../mocks/mock_conversation.go -package=mocks ConversationRepositoryIface
//go:generate mockgen -source=./project.go -destination=../mocks/mock_project.go -package=mocks ProjectRepositoryIface

// cmd/atriumctl/schema.go
package main

// schemaStatements is executed in order by `atriumctl migrate`. Every
// statement is a no-op when the object already exists.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS citext`,
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`DO $$ BEGIN
		CREATE TYPE user_status AS ENUM ('pending', 'active', 'suspended');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,

	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		email citext NOT NULL UNIQUE,
		first_name text NOT NULL,
		last_name text,
		password_hash text NOT NULL,
		status user_status NOT NULL DEFAULT 'pending',
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS organizations (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name text NOT NULL,
		slug text NOT NULL UNIQUE,
		owner_id uuid NOT NULL REFERENCES users(id),
		settings jsonb,
		is_active boolean NOT NULL DEFAULT true,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS organization_members (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id uuid NOT NULL REFERENCES organizations(id),
		user_id uuid NOT NULL REFERENCES users(id),
		role text NOT NULL,
		status text NOT NULL DEFAULT 'active',
		joined_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now(),
		CONSTRAINT idx_org_user UNIQUE (organization_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS organization_invitations (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id uuid NOT NULL REFERENCES organizations(id),
		email citext NOT NULL,
		role text NOT NULL,
		invited_by_id uuid NOT NULL REFERENCES users(id),
		token text NOT NULL UNIQUE,
		status text NOT NULL DEFAULT 'pending',
		expires_at timestamptz NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS agents (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id uuid REFERENCES organizations(id),
		user_id uuid REFERENCES users(id),
		name text NOT NULL,
		description text,
		model_name text NOT NULL,
		system_prompt text,
		config jsonb,
		is_active boolean NOT NULL DEFAULT true,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_agents_organization_id ON agents(organization_id)`,
	`CREATE INDEX IF NOT EXISTS idx_agents_user_id ON agents(user_id)`,

	`CREATE TABLE IF NOT EXISTS conversations (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id uuid REFERENCES organizations(id),
		user_id uuid REFERENCES users(id),
		agent_id uuid NOT NULL REFERENCES agents(id),
		created_by_id uuid NOT NULL REFERENCES users(id),
		title text,
		title_status text NOT NULL DEFAULT 'provisional',
		title_method text NOT NULL DEFAULT 'auto',
		title_generated_at timestamptz,
		message_count bigint NOT NULL DEFAULT 0,
		last_message_at timestamptz,
		metadata jsonb,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_conversations_organization_id ON conversations(organization_id)`,
	`CREATE INDEX IF NOT EXISTS idx_conversations_user_id ON conversations(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_conversations_agent_id ON conversations(agent_id)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		conversation_id uuid NOT NULL REFERENCES conversations(id),
		parent_message_id uuid,
		role text NOT NULL,
		content text NOT NULL,
		tool_calls jsonb,
		prompt_tokens integer NOT NULL DEFAULT 0,
		completion_tokens integer NOT NULL DEFAULT 0,
		cost_cents bigint NOT NULL DEFAULT 0,
		created_by_id uuid REFERENCES users(id),
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_conversation_id ON messages(conversation_id)`,

	`CREATE TABLE IF NOT EXISTS attachments (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		conversation_id uuid NOT NULL REFERENCES conversations(id),
		message_id uuid REFERENCES messages(id),
		storage_key text NOT NULL,
		url text NOT NULL,
		filename text NOT NULL,
		size_bytes bigint NOT NULL,
		mime_type text NOT NULL,
		uploaded_by_id uuid NOT NULL REFERENCES users(id),
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attachments_conversation_id ON attachments(conversation_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attachments_message_id ON attachments(message_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id uuid REFERENCES organizations(id),
		user_id uuid REFERENCES users(id),
		name text NOT NULL,
		description text,
		status text NOT NULL DEFAULT 'active',
		created_by_id uuid NOT NULL REFERENCES users(id),
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_organization_id ON projects(organization_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_user_id ON projects(user_id)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		project_id uuid NOT NULL REFERENCES projects(id),
		name text NOT NULL,
		description text,
		due_at timestamptz,
		completed_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_milestones_project_id ON milestones(project_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		project_id uuid NOT NULL REFERENCES projects(id),
		milestone_id uuid REFERENCES milestones(id),
		title text NOT NULL,
		description text,
		status text NOT NULL DEFAULT 'todo',
		assignee_id uuid,
		actual_hours double precision NOT NULL DEFAULT 0,
		due_at timestamptz,
		created_by_id uuid NOT NULL REFERENCES users(id),
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_milestone_id ON tasks(milestone_id)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		task_id uuid NOT NULL REFERENCES tasks(id),
		user_id uuid NOT NULL REFERENCES users(id),
		hours double precision NOT NULL,
		description text,
		entered_at timestamptz NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_task_id ON time_entries(task_id)`,
}

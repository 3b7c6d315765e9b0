package graph

import (
	graphql "github.com/graph-gophers/graphql-go"
)

// Schema is the message-board API surface, schema-first so the servable
// document and the resolver methods stay reviewable side by side.
const Schema = `
	schema {
		query: Query
		mutation: Mutation
		subscription: Subscription
	}

	scalar Time

	type Query {
		me: User
		user(id: ID!): User
		users: [User!]!
		message(id: ID!): Message
		messages(cursor: String, limit: Int): MessageConnection!
	}

	type Mutation {
		signUp(username: String!, email: String!, password: String!): Token!
		signIn(login: String!, password: String!): Token!
		createMessage(text: String!): Message!
		deleteMessage(id: ID!): Boolean!
	}

	type Subscription {
		messageCreated: MessageCreated!
	}

	type Token {
		token: String!
	}

	type User {
		id: ID!
		username: String!
		email: String!
		role: String
		messages: [Message!]!
	}

	type Message {
		id: ID!
		text: String!
		createdAt: Time!
		user: User!
	}

	type MessageConnection {
		edges: [Message!]!
		pageInfo: PageInfo!
	}

	type PageInfo {
		hasNextPage: Boolean!
		endCursor: String
	}

	type MessageCreated {
		message: Message!
	}
`

// MustSchema parses the schema against the resolver set, panicking on any
// mismatch between the two. Called once at composition time.
func MustSchema(root *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(Schema, root)
}

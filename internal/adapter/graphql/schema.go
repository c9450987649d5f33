// Package adaptgql implements the GraphQL adapter for the application.
package adaptgql

// Schema is the GraphQL SDL served at /graphql.
const Schema = `
schema {
	query: Query
	mutation: Mutation
}

type WeightRecord {
	id: Int!
	userId: Int!
	weight: String!
	unit: String!
	notes: String
	recordedAt: String!
	createdAt: String!
	updatedAt: String!
}

type User {
	id: Int!
	email: String!
	name: String!
	createdAt: String!
	updatedAt: String!
	weightRecords: [WeightRecord!]!
}

input CreateWeightRecordInput {
	userId: Int!
	weight: String!
	unit: String
	notes: String
	recordedAt: String
}

input UpdateWeightRecordInput {
	weight: String
	unit: String
	notes: String
	recordedAt: String
}

type WeightRecordsConnection {
	data: [WeightRecord!]!
	total: Int!
	hasMore: Boolean!
}

type DeleteResult {
	success: Boolean!
	message: String!
}

type Query {
	# Weight records, newest measurement first, optionally for one user.
	# limit defaults to 50 and offset to 0.
	weightRecords(userId: Int, limit: Int, offset: Int): WeightRecordsConnection!
	weightRecord(id: Int!): WeightRecord
	weightRecordsByUser(userId: Int!): [WeightRecord!]!
	user(id: Int!): User
}

type Mutation {
	createWeightRecord(input: CreateWeightRecordInput!): WeightRecord!
	updateWeightRecord(id: Int!, input: UpdateWeightRecordInput!): WeightRecord!
	deleteWeightRecord(id: Int!): DeleteResult!
}
`

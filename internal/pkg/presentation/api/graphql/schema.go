package graphql

const schema string = `
	schema {
		query: Query
		mutation: Mutation
	}

	type Entity {
		id: ID!
		type: String!
		date_of_birth: String!
		eye_color: String!
		created_at: String
		updated_at: String
	}

	input EntityFilters {
		types: [String!]
		eyeColors: [String!]
		dateFrom: String
		dateTo: String
	}

	type DeleteResult {
		success: Boolean!
		message: String!
	}

	type Query {
		entities(filters: EntityFilters): [Entity!]!
	}

	type Mutation {
		addEntity(type: String!, date_of_birth: String!, eye_color: String!): Entity!
		# fields that are left out keep their stored value, null is returned for an unknown id
		updateEntity(id: ID!, type: String, date_of_birth: String, eye_color: String): Entity
		deleteEntity(id: ID!): DeleteResult!
	}
`

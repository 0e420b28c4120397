// Package graphql serves the credential service as a GraphQL API over HTTP.
package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds the code-first schema:
//
//	type User { id: ID!, email: String!, createdAt: DateTime!, updatedAt: DateTime! }
//	type AuthResponse { token: String!, user: User! }
//	input RegisterInput { email: String!, password: String!, biometricKey: String }
//	input LoginInput { email: String!, password: String! }
//	input BiometricLoginInput { biometricKey: String! }
//	type Query { health: String! }
//	type Mutation {
//	  register(input: RegisterInput!): AuthResponse!
//	  login(input: LoginInput!): AuthResponse!
//	  biometricLogin(input: BiometricLoginInput!): AuthResponse!
//	  updateBiometricKey(newBiometricKey: String!): User!
//	}
func NewSchema(r *Resolver) (graphql.Schema, error) {
	nn := graphql.NewNonNull

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: nn(graphql.ID)},
			"email":     &graphql.Field{Type: nn(graphql.String)},
			"createdAt": &graphql.Field{Type: nn(graphql.DateTime)},
			"updatedAt": &graphql.Field{Type: nn(graphql.DateTime)},
		},
	})

	authResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthResponse",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: nn(graphql.String)},
			"user":  &graphql.Field{Type: nn(userType)},
		},
	})

	registerInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RegisterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":        &graphql.InputObjectFieldConfig{Type: nn(graphql.String)},
			"password":     &graphql.InputObjectFieldConfig{Type: nn(graphql.String)},
			"biometricKey": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	loginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: nn(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: nn(graphql.String)},
		},
	})

	biometricLoginInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BiometricLoginInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"biometricKey": &graphql.InputObjectFieldConfig{Type: nn(graphql.String)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{Type: nn(graphql.String), Resolve: r.Health},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type:    nn(authResponseType),
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: nn(registerInput)}},
				Resolve: r.Register,
			},
			"login": &graphql.Field{
				Type:    nn(authResponseType),
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: nn(loginInput)}},
				Resolve: r.Login,
			},
			"biometricLogin": &graphql.Field{
				Type:    nn(authResponseType),
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: nn(biometricLoginInput)}},
				Resolve: r.BiometricLogin,
			},
			"updateBiometricKey": &graphql.Field{
				Type:    nn(userType),
				Args:    graphql.FieldConfigArgument{"newBiometricKey": &graphql.ArgumentConfig{Type: nn(graphql.String)}},
				Resolve: r.UpdateBiometricKey,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

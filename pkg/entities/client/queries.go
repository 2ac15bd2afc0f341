package client

const entityFields string = `id type date_of_birth eye_color created_at updated_at`

const queryEntities string = `query GetEntities($filters: EntityFilters) {
  entities(filters: $filters) { ` + entityFields + ` }
}`

const mutationAddEntity string = `mutation AddEntity($type: String!, $date_of_birth: String!, $eye_color: String!) {
  addEntity(type: $type, date_of_birth: $date_of_birth, eye_color: $eye_color) { ` + entityFields + ` }
}`

const mutationUpdateEntity string = `mutation UpdateEntity($id: ID!, $type: String, $date_of_birth: String, $eye_color: String) {
  updateEntity(id: $id, type: $type, date_of_birth: $date_of_birth, eye_color: $eye_color) { ` + entityFields + ` }
}`

const mutationDeleteEntity string = `mutation DeleteEntity($id: ID!) {
  deleteEntity(id: $id) { success message }
}`

package domain

// Position é o puesto de um empleado.
type Position string

// Area é a área de trabalho de um empleado.
type Area string

const (
	PositionOperator    Position = "operador bodega"
	PositionCoordinator Position = "coordinador"
	PositionCarrier     Position = "transportista"

	AreaWarehouse Area = "bodega"
	AreaReturns   Area = "devoluciones"
	AreaSupport   Area = "soporte logistico"
)

// Valid informa se o valor pertence à enumeração.
func (p Position) Valid() bool {
	switch p {
	case PositionOperator, PositionCoordinator, PositionCarrier:
		return true
	}
	return false
}

func (a Area) Valid() bool {
	switch a {
	case AreaWarehouse, AreaReturns, AreaSupport:
		return true
	}
	return false
}

// Employee representa a entidade empleado.
// O hash da senha nunca é serializado na resposta.
type Employee struct {
	ID           int64    `json:"empleado_id"`
	Name         string   `json:"nombre"`
	LastName1    string   `json:"apellido1"`
	LastName2    string   `json:"apellido2"`
	Phone        string   `json:"telefono"`
	Email        string   `json:"email"`
	Position     Position `json:"puesto"`
	Area         Area     `json:"area"`
	PasswordHash string   `json:"-"`
}

// EmployeeInput é o payload de criação de um empleado.
// A contrasena chega em texto puro e é hasheada no serviço.
type EmployeeInput struct {
	Name      string   `json:"nombre"`
	LastName1 string   `json:"apellido1"`
	LastName2 string   `json:"apellido2"`
	Phone     string   `json:"telefono"`
	Email     string   `json:"email"`
	Position  Position `json:"puesto"`
	Area      Area     `json:"area"`
	Password  string   `json:"contrasena"`
}

// EmployeeUpdate é o payload de atualização parcial: só os campos presentes
// no corpo são aplicados; os demais ficam como estão.
type EmployeeUpdate struct {
	Name      *string   `json:"nombre"`
	LastName1 *string   `json:"apellido1"`
	LastName2 *string   `json:"apellido2"`
	Phone     *string   `json:"telefono"`
	Email     *string   `json:"email"`
	Position  *Position `json:"puesto"`
	Area      *Area     `json:"area"`
	Password  *string   `json:"contrasena"`
}

// EmployeeFilter define os filtros opcionais da busca de empleados.
// Strings são comparadas por substring (case-insensitive); enums por igualdade.
type EmployeeFilter struct {
	Name      *string
	LastName1 *string
	LastName2 *string
	Email     *string
	Position  *Position
	Area      *Area
	Page      Page
}

// Empty informa se nenhum filtro foi fornecido (busca vazia retorna nada).
func (f EmployeeFilter) Empty() bool {
	return f.Name == nil && f.LastName1 == nil && f.LastName2 == nil &&
		f.Email == nil && f.Position == nil && f.Area == nil
}

// Credentials é o payload de login do empleado.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token é a resposta de autenticação bem-sucedida.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

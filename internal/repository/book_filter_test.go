package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookFilter_AllIsIgnored(t *testing.T) {
	sql, args := BookFilter{CurriculumComponent: "all", ClassGroup: "all"}.Conditions().SQL()
	assert.Empty(t, sql)
	assert.Empty(t, args)
}

func TestBookFilter_SearchUsesThreeArgs(t *testing.T) {
	sql, args := BookFilter{Search: "machado"}.Conditions().SQL()
	assert.Equal(t, 3, strings.Count(sql, "ILIKE ?"))
	assert.Equal(t, []interface{}{"%machado%", "%machado%", "%machado%"}, args)
}

func TestBookFilter_ArgumentOrderFollowsPredicates(t *testing.T) {
	f := BookFilter{
		Search:              "x",
		CurriculumComponent: "Matemática",
		ClassGroup:          "1º Ano A",
		ProfessorID:         "p-1",
		StudentID:           "s-1",
	}
	sql, args := f.Conditions().SQL()

	assert.Equal(t, strings.Count(sql, "?"), len(args))
	assert.Equal(t, []interface{}{
		"%x%", "%x%", "%x%",
		"Matemática",
		"1º Ano A",
		"p-1", "professor",
		"s-1", "student",
	}, args)
}

func TestUserFilter_Conditions(t *testing.T) {
	sql, args := UserFilter{Role: "student", ClassGroup: "2º Ano B"}.Conditions().SQL()
	assert.Equal(t, "(users.role = ?) AND (users.class_group = ?)", sql)
	assert.Equal(t, []interface{}{"student", "2º Ano B"}, args)
}

func TestAssignmentFilter_Conditions(t *testing.T) {
	sql, args := AssignmentFilter{UserID: "u-1"}.Conditions().SQL()
	assert.Equal(t, "(ba.user_id = ?)", sql)
	assert.Equal(t, []interface{}{"u-1"}, args)
}

func TestComponentAndClassConditions_MatchAllLiterally(t *testing.T) {
	sql, args := componentConditions("all").SQL()
	assert.Equal(t, "(books.curriculum_component = ?)", sql)
	assert.Equal(t, []interface{}{"all"}, args)

	sql, args = classConditions("all").SQL()
	assert.Contains(t, sql, "bcg.class_group = ?")
	assert.Equal(t, []interface{}{"all"}, args)
}

func TestStudentClassConditions(t *testing.T) {
	sql, args := studentClassConditions("1º Ano A").SQL()
	assert.Equal(t, 2, strings.Count(sql, "?"))
	assert.Equal(t, []interface{}{"student", "1º Ano A"}, args)
}

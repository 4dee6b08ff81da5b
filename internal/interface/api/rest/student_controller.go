package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/domain/apperror"
	"student-manager-api/internal/domain/student"
	studentDTO "student-manager-api/internal/interface/api/rest/dto/student"
	"student-manager-api/internal/interface/api/rest/response"
	"student-manager-api/internal/interface/api/rest/validator"
)

type StudentController struct {
	logger         *zap.Logger
	studentService ports.StudentService
	validator      *validator.Validator
}

func NewStudentController(
	r gin.IRouter,
	logger *zap.Logger,
	studentService ports.StudentService,
	v *validator.Validator,
	authMW gin.HandlerFunc,
) *StudentController {
	sc := &StudentController{
		logger:         logger,
		studentService: studentService,
		validator:      v,
	}

	r.GET(RouteStudents, sc.ListStudentsHandler)
	r.GET(RouteStudent, sc.GetStudentHandler)
	r.POST(RouteStudents, authMW, sc.CreateStudentHandler)
	r.PUT(RouteStudent, authMW, sc.UpdateStudentHandler)
	r.DELETE(RouteStudent, authMW, sc.DeleteStudentHandler)
	r.GET(RouteStudentHistory, authMW, sc.StudentHistoryHandler)

	return sc
}

func (sc *StudentController) ListStudentsHandler(c *gin.Context) {
	page, err := listPage(c)
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}
	filter := student.Filter{
		Name:   c.Query("name"),
		Email:  c.Query("email"),
		RA:     c.Query("ra"),
		CPF:    c.Query("cpf"),
		Search: c.Query("search"),
	}

	res, err := sc.studentService.List(c.Request.Context(), filter, page)
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	response.OK(c, http.StatusOK, studentDTO.ToListResponse(res))
}

func (sc *StudentController) GetStudentHandler(c *gin.Context) {
	id, err := pathID(c, "student")
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	s, err := sc.studentService.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	response.OK(c, http.StatusOK, studentDTO.ToResponseStudent(*s))
}

func (sc *StudentController) CreateStudentHandler(c *gin.Context) {
	pr, err := principal(c)
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	var req studentDTO.CreateRequest
	if err = bind(c, sc.validator, &req, "Invalid student data"); err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	s, err := sc.studentService.Create(c.Request.Context(), pr, req.ToDomain())
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	response.OK(c, http.StatusCreated, studentDTO.ToResponseStudent(*s))
}

func (sc *StudentController) UpdateStudentHandler(c *gin.Context) {
	pr, err := principal(c)
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}
	id, err := pathID(c, "student")
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	var req studentDTO.UpdateRequest
	if err = bind(c, sc.validator, &req, "Invalid student update data"); err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	s, err := sc.studentService.Update(c.Request.Context(), pr, id, req.ToDomain())
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	response.OK(c, http.StatusOK, studentDTO.ToResponseStudent(*s))
}

func (sc *StudentController) DeleteStudentHandler(c *gin.Context) {
	pr, err := principal(c)
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}
	id, err := pathID(c, "student")
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	if err = sc.studentService.Delete(c.Request.Context(), pr, id); err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	response.NoContent(c)
}

func (sc *StudentController) StudentHistoryHandler(c *gin.Context) {
	id, err := pathID(c, "student")
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	actions, err := sc.studentService.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, sc.logger, err)
		return
	}

	response.OK(c, http.StatusOK, studentDTO.ToResponseActions(actions))
}

func listPage(c *gin.Context) (student.Page, error) {
	page, ok := validator.QueryInt(c.Query("page"), student.DefaultPage)
	if !ok {
		return student.Page{}, apperror.Validation(
			"Page must be greater than 0",
			apperror.FieldError{Field: "page", Message: "Page must be greater than 0"},
		)
	}
	limit, ok := validator.QueryInt(c.Query("limit"), student.DefaultLimit)
	if !ok {
		return student.Page{}, apperror.Validation(
			"Limit must be between 1 and 100",
			apperror.FieldError{Field: "limit", Message: "Limit must be between 1 and 100"},
		)
	}

	return student.Page{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}, nil
}

package v1_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"

	v1 "github.com/pocketfolio/backend/internal/controllers/v1"
	"github.com/pocketfolio/backend/test"
)

// multipartFile builds a multipart body with a single "file" part.
func multipartFile(suite *TestSuiteStandard, name, content string) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	part, err := mw.CreateFormFile("file", name)
	suite.Require().NoError(err)
	_, err = part.Write([]byte(content))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}

func (suite *TestSuiteStandard) getProfile(session v1.Session) v1.Profile {
	recorder := suite.authedRequest(session, http.MethodGet, "/v1/profile", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ProfileResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return *response.Data
}

// Registration creates an empty profile alongside the user.
func (suite *TestSuiteStandard) TestProfileCreatedOnRegister() {
	session := suite.register("jane@example.com")

	profile := suite.getProfile(session)
	suite.Assert().Equal("jane@example.com", profile.Email)
	suite.Assert().Empty(profile.FirstName)
	suite.Assert().Empty(profile.AvatarURL)
}

func (suite *TestSuiteStandard) TestProfileUpdate() {
	session := suite.register("jane@example.com")

	recorder := suite.authedRequest(session, http.MethodPatch, "/v1/profile", map[string]string{
		"firstName": "Jane",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ProfileResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("Jane", response.Data.FirstName)

	// The last name was not part of the request and stays untouched
	recorder = suite.authedRequest(session, http.MethodPatch, "/v1/profile", map[string]string{
		"lastName": "Doe",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	profile := suite.getProfile(session)
	suite.Assert().Equal("Jane", profile.FirstName)
	suite.Assert().Equal("Doe", profile.LastName)
}

func (suite *TestSuiteStandard) TestProfileAvatarUpload() {
	session := suite.register("jane@example.com")

	body, headers := multipartFile(suite, "me.png", "not really a PNG")
	recorder := suite.authedRequest(session, http.MethodPost, "/v1/profile/avatar", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ProfileResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotEmpty(response.Data.AvatarURL)
	suite.Assert().True(strings.HasPrefix(response.Data.AvatarURL, "/files/avatars/"), "Avatar URL is %s", response.Data.AvatarURL)
	suite.Assert().True(strings.HasSuffix(response.Data.AvatarURL, ".png"))

	// Replacing the avatar yields a new URL
	body, headers = multipartFile(suite, "new.webp", "different bytes")
	recorder = suite.authedRequest(session, http.MethodPost, "/v1/profile/avatar", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var replaced v1.ProfileResponse
	test.DecodeResponse(suite.T(), &recorder, &replaced)
	suite.Assert().NotEqual(response.Data.AvatarURL, replaced.Data.AvatarURL)
}

func (suite *TestSuiteStandard) TestProfileAvatarUploadInvalid() {
	session := suite.register("jane@example.com")

	// No file part
	recorder := suite.authedRequest(session, http.MethodPost, "/v1/profile/avatar", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// Unsupported file type
	body, headers := multipartFile(suite, "resume.pdf", "%PDF-1.4")
	recorder = suite.authedRequest(session, http.MethodPost, "/v1/profile/avatar", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

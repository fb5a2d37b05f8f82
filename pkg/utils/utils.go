package utils

import (
	"fmt"
	"math/rand"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/holdno/snowFlakeByGo"

	"github.com/quka-ai/quka-client/pkg/errors"
	"github.com/quka-ai/quka-client/pkg/i18n"
)

var (
	idWorker     *snowFlakeByGo.Worker
	idWorkerOnce sync.Once
)

// SetupIDWorker picks the cluster id for generated ids. Only the first call
// in a process takes effect.
func SetupIDWorker(clusterID int64) {
	idWorkerOnce.Do(func() {
		idWorker, _ = snowFlakeByGo.NewWorker(clusterID)
	})
}

func GenUniqID() int64 {
	SetupIDWorker(1)
	return idWorker.GetId()
}

func GenUniqIDStr() string {
	return strconv.FormatInt(GenUniqID(), 10)
}

// RandomStr 随机字符串
func RandomStr(l int) string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	seed := "1234567890qwertyuiopasdfghjklzxcvbnmQWERTYUIOPASDFGHJKLZXCVBNM"
	b := make([]byte, l)
	for i := range b {
		b[i] = seed[r.Intn(len(seed))]
	}
	return string(b)
}

func BindArgsWithGin(c *gin.Context, req interface{}) error {
	err := c.ShouldBindWith(req, binding.Default(c.Request.Method, c.ContentType()))
	if err != nil {
		return errors.New(fmt.Sprintf("Gin.ShouldBindWith.%s.%s", c.Request.Method, c.Request.URL.Path), i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}
	return nil
}

// Language represents a language and its weight (priority)
type Language struct {
	Tag    string
	Weight float64
}

var acceptLanguageRe = regexp.MustCompile(`([a-zA-Z\-]+)(?:;q=([0-9\.]+))?`)

// ParseAcceptLanguage parses the Accept-Language header and returns the
// languages sorted by weight.
func ParseAcceptLanguage(header string) []Language {
	if header == "" {
		return []Language{}
	}

	var languages []Language
	for _, match := range acceptLanguageRe.FindAllStringSubmatch(header, -1) {
		weight := 1.0
		if match[2] != "" {
			if w, err := strconv.ParseFloat(match[2], 64); err == nil {
				weight = w
			}
		}
		languages = append(languages, Language{Tag: match[1], Weight: weight})
	}

	sort.SliceStable(languages, func(i, j int) bool {
		return languages[i].Weight > languages[j].Weight
	})
	return languages
}

// MaskString keeps preLen leading and postLen trailing runes.
func MaskString(s string, preLen, postLen int) string {
	runes := []rune(s)

	pre, post := string(runes), string(runes)
	if len(runes) >= preLen {
		pre = string(runes[:preLen])
	}
	if len(runes) >= postLen {
		post = string(runes[len(runes)-postLen:])
	}
	return pre + "******" + post
}

package media

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

type SFTPConfig struct {
	Addr           string
	User           string
	Password       string
	Dir            string
	PublicBaseURL  string
	KnownHostsFile string
}

// SFTPUploader writes images to a directory served by a static file host.
type SFTPUploader struct {
	cfg      SFTPConfig
	hostKeys ssh.HostKeyCallback
}

// NewSFTPUploader loads the known_hosts file used to verify the server key.
func NewSFTPUploader(cfg SFTPConfig) (*SFTPUploader, error) {
	if cfg.KnownHostsFile == "" {
		return nil, errors.New("sftp: known hosts file is required")
	}
	hostKeys, err := knownhosts.New(cfg.KnownHostsFile)
	if err != nil {
		return nil, errors.Wrap(err, "sftp: load known hosts")
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &SFTPUploader{cfg: cfg, hostKeys: hostKeys}, nil
}

func (u *SFTPUploader) Upload(ctx context.Context, file File) (string, error) {
	sshCfg := &ssh.ClientConfig{
		User:            u.cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(u.cfg.Password)},
		HostKeyCallback: u.hostKeys,
		Timeout:         10 * time.Second,
	}

	conn, err := ssh.Dial("tcp", u.cfg.Addr, sshCfg)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	// ssh has no context support; closing the connection aborts a stuck write.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if err := client.MkdirAll(u.cfg.Dir); err != nil {
		return "", err
	}

	name := objectName(file)
	f, err := client.Create(path.Join(u.cfg.Dir, name))
	if err != nil {
		return "", err
	}
	if _, err := f.Write(file.Data); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return u.cfg.PublicBaseURL + "/" + name, nil
}

func objectName(file File) string {
	ext := strings.ToLower(path.Ext(file.Filename))
	if ext == "" {
		ext = "." + strings.TrimPrefix(file.ContentType, "image/")
	}
	return uuid.New().String() + ext
}

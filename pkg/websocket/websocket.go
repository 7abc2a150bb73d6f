package websocketPkg

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"VirtualMirror/internal/entity"

	"github.com/gorilla/websocket"
)

// IWebsocket is the client for the pose-detection AI service that checks the
// user's position in front of the mirror before a capture.
type IWebsocket interface {
	ProcessPoseFrame(frame []byte) (*entity.PoseResult, error)
	IsConnected() bool
	Reconnect() error
	CloseConnections()
}

type webSocketClient struct {
	poseConn     *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewAIWebSocketClient() IWebsocket {
	client := &webSocketClient{
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go client.connectInBackground()

	return client
}

func (c *webSocketClient) connectInBackground() {
	if err := c.Reconnect(); err != nil {
		log.Printf("Initial connection to pose service failed: %v. Will retry on demand.", err)
	} else {
		log.Printf("Successfully connected to pose service")
	}
}

func (c *webSocketClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.poseConn != nil
}

func (c *webSocketClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconnectLocked()
}

func (c *webSocketClient) reconnectLocked() error {
	if c.poseConn != nil {
		c.poseConn.Close()
		c.poseConn = nil
	}

	url := os.Getenv("POSE_DETECTION_WS_URL")
	if url == "" {
		return fmt.Errorf("URL for pose detection not configured")
	}

	log.Printf("Connecting to pose service at %s", url)

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to pose service: %w", err)
	}

	c.poseConn = conn
	return nil
}

// ProcessPoseFrame sends one camera frame and awaits the positioning verdict.
func (c *webSocketClient) ProcessPoseFrame(frame []byte) (*entity.PoseResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.poseConn == nil {
		if err := c.reconnectLocked(); err != nil {
			return nil, err
		}
	}

	payload := map[string]string{
		"frame": base64.StdEncoding.EncodeToString(frame),
	}

	if err := c.poseConn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return nil, err
	}
	if err := c.poseConn.WriteJSON(payload); err != nil {
		c.poseConn.Close()
		c.poseConn = nil
		return nil, fmt.Errorf("failed to send frame: %w", err)
	}

	if err := c.poseConn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
		return nil, err
	}

	_, message, err := c.poseConn.ReadMessage()
	if err != nil {
		c.poseConn.Close()
		c.poseConn = nil
		return nil, fmt.Errorf("failed to read pose result: %w", err)
	}

	var result entity.PoseResult
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("malformed pose result: %w", err)
	}

	return &result, nil
}

func (c *webSocketClient) CloseConnections() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.poseConn != nil {
		c.poseConn.Close()
		c.poseConn = nil
	}
}
